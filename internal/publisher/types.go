package publisher

// Event type names on the stream.
const (
	EventMemoryAdded = "memory.added"
	EventTaskCreated = "task.created"
)

// Task priorities derived from classification confidence.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// priorityFor derives the task priority from confidence thresholds.
func priorityFor(confidence float64) string {
	switch {
	case confidence > 0.9:
		return PriorityHigh
	case confidence < 0.6:
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// Memory is one published memory read back from the stream.
type Memory struct {
	Content     string  `json:"content"`
	ContentType string  `json:"content_type"`
	Confidence  float64 `json:"confidence"`
	Timestamp   int64   `json:"timestamp"`
}
