package extractor

import (
	"regexp"
	"sort"
	"strings"
)

// Extractor is the deterministic rule-based classifier. It is stateless
// and safe for concurrent use.
type Extractor struct {
	urlRe   *regexp.Regexp
	dateRes []*regexp.Regexp
}

// New creates a rule-based extractor.
func New() *Extractor {
	return &Extractor{
		urlRe: regexp.MustCompile(`(?i)https?://[^\s<>"{}|\\^` + "`" + `\[\]]+`),
		dateRes: []*regexp.Regexp{
			regexp.MustCompile(`\d{1,2}[./]\d{1,2}[./]\d{2,4}`), // 25.12.2024 or 12/25/2024
			regexp.MustCompile(`\d{4}-\d{2}-\d{2}`),             // 2024-12-25
		},
	}
}

// Classify scores the message against every content type's trigger set and
// returns the non-zero scores sorted by descending confidence. Ties keep
// trigger-table declaration order.
func (e *Extractor) Classify(text string) []Score {
	lowered := strings.ToLower(text)

	var scores []Score
	for _, entry := range triggerTable {
		score := 0.0
		for _, trigger := range entry.Triggers {
			if strings.Contains(lowered, trigger) {
				score += triggerScore
			}
		}

		// Reward multi-trigger agreement once.
		if score > multiBoostOver {
			score = min(1.0, score+multiBoost)
		}

		if score > 0 {
			scores = append(scores, Score{Type: entry.Type, Confidence: min(1.0, score)})
		}
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Confidence > scores[j].Confidence
	})
	return scores
}

// ExtractLinks returns all URLs found in the text.
func (e *Extractor) ExtractLinks(text string) []string {
	return e.urlRe.FindAllString(text, -1)
}

// ExtractDeadline returns the first date token found in the text, or "" when
// none. Recognizes two numeric formats and a relative-day keyword set.
func (e *Extractor) ExtractDeadline(text string) string {
	for _, re := range e.dateRes {
		if m := re.FindString(text); m != "" {
			return m
		}
	}

	lowered := strings.ToLower(text)
	for _, word := range []string{"завтра", "tomorrow"} {
		if strings.Contains(lowered, word) {
			return "tomorrow"
		}
	}
	for _, word := range []string{"сегодня", "today"} {
		if strings.Contains(lowered, word) {
			return "today"
		}
	}
	return ""
}

// Normalize collapses whitespace, truncates the text to the summary limit
// and prepends the content type prefix.
func (e *Extractor) Normalize(text string, t ContentType) string {
	normalized := strings.Join(strings.Fields(text), " ")

	if runes := []rune(normalized); len(runes) > summaryLimit {
		normalized = string(runes[:summaryLimit-3]) + "..."
	}

	return Prefix(t) + normalized
}

// Extract classifies the text and builds extraction items from the top
// scoring content type. A task carrying a deadline additionally yields a
// derived deadline item, so one message can produce two items.
func (e *Extractor) Extract(text string) []Item {
	scores := e.Classify(text)
	if len(scores) == 0 {
		return nil
	}

	top := scores[0]
	if top.Confidence < extractMinConf {
		return nil
	}

	metadata := map[string]any{}

	if top.Type == TypeLink {
		if links := e.ExtractLinks(text); len(links) > 0 {
			metadata[MetaLinks] = links
		}
	}

	if top.Type == TypeDeadline || top.Type == TypeTask {
		if deadline := e.ExtractDeadline(text); deadline != "" {
			metadata[MetaDeadline] = deadline
		}
	}

	normalized := e.Normalize(text, top.Type)

	items := []Item{{
		Type:       top.Type,
		Content:    normalized,
		Confidence: top.Confidence,
		RawText:    text,
		Metadata:   metadata,
	}}

	// A task with a deadline also produces a deadline item tied to it.
	if deadline, ok := metadata[MetaDeadline].(string); ok && top.Type == TypeTask {
		summary := strings.TrimPrefix(normalized, Prefix(TypeTask))
		items = append(items, Item{
			Type:       TypeDeadline,
			Content:    Prefix(TypeDeadline) + deadline + ": " + summary,
			Confidence: top.Confidence,
			RawText:    text,
			Metadata:   map[string]any{MetaParentTask: true},
		})
	}

	return items
}
