package extractor

// ContentType is the classification taxonomy for extracted content.
type ContentType string

const (
	TypeDecision    ContentType = "decision"
	TypeTask        ContentType = "task"
	TypeDeadline    ContentType = "deadline"
	TypeLink        ContentType = "link"
	TypeContext     ContentType = "context"
	TypeRequirement ContentType = "requirement"
	TypeUnknown     ContentType = "unknown"
)

// Metadata keys attached to extracted items.
const (
	MetaDeadline   = "deadline"
	MetaLinks      = "links"
	MetaAssignee   = "assignee"
	MetaParentTask = "parent_task"
)

// Score is a transient (type, confidence) pair produced during rule scoring.
type Score struct {
	Type       ContentType
	Confidence float64
}

// Item is one classified unit of content. Immutable once created.
type Item struct {
	Type       ContentType
	Content    string // normalized, prefixed display string
	Confidence float64
	RawText    string
	Metadata   map[string]any
}
