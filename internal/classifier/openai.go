package classifier

import (
	"context"
	"encoding/json"
	"fmt"

	"memokeeper/internal/cost"
	"memokeeper/internal/extractor"
	pkgLog "memokeeper/pkg/log"
	pkgOpenAI "memokeeper/pkg/openai"
)

// remoteResult is the JSON shape the backend is instructed to return.
type remoteResult struct {
	ContentType string  `json:"content_type"`
	Confidence  float64 `json:"confidence"`
	Summary     string  `json:"summary"`
	Metadata    struct {
		Deadline string   `json:"deadline"`
		Links    []string `json:"links"`
		Assignee string   `json:"assignee"`
	} `json:"metadata"`
}

// OpenAIBackend classifies messages through the OpenAI chat completions API
// and bills every call to the cost ledger.
type OpenAIBackend struct {
	l      pkgLog.Logger
	client pkgOpenAI.IOpenAI
	model  string
	ledger *cost.Ledger
}

var _ Backend = (*OpenAIBackend)(nil)

// NewOpenAIBackend creates the OpenAI-backed classification backend.
func NewOpenAIBackend(l pkgLog.Logger, client pkgOpenAI.IOpenAI, model string, ledger *cost.Ledger) *OpenAIBackend {
	if model == "" {
		model = pkgOpenAI.DefaultModel
	}
	return &OpenAIBackend{l: l, client: client, model: model, ledger: ledger}
}

// Enabled reports whether the backend can be invoked.
func (b *OpenAIBackend) Enabled() bool {
	return b.client != nil
}

// Classify sends one classification request. A nil item means nothing
// actionable was found; errors are transport or protocol failures the
// caller is expected to swallow.
func (b *OpenAIBackend) Classify(ctx context.Context, text string) (*extractor.Item, error) {
	if !b.Enabled() {
		return nil, nil
	}

	resp, err := b.client.CreateChatCompletion(ctx, &pkgOpenAI.Request{
		Model: b.model,
		Messages: []pkgOpenAI.Message{
			{Role: "system", Content: classificationPrompt},
			{Role: "user", Content: "Message: " + text},
		},
		ResponseFormat: &pkgOpenAI.ResponseFormat{Type: "json_object"},
		Temperature:    classifyTemperature,
		MaxTokens:      classifyMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("classifier: remote call failed: %w", err)
	}

	if b.ledger != nil {
		b.ledger.RecordUsage(ctx, b.model, resp.Usage.PromptTokens, resp.Usage.CompletionTokens, EndpointClassify)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("classifier: empty completion")
	}

	var result remoteResult
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &result); err != nil {
		return nil, fmt.Errorf("classifier: malformed completion: %w", err)
	}

	contentType := mapContentType(result.ContentType)
	if contentType == extractor.TypeUnknown {
		return nil, nil
	}
	if result.Confidence < remoteMinConf {
		return nil, nil
	}

	summary := result.Summary
	if summary == "" {
		summary = truncate(text, 150)
	}

	metadata := map[string]any{}
	if result.Metadata.Deadline != "" && result.Metadata.Deadline != "null" {
		metadata[extractor.MetaDeadline] = result.Metadata.Deadline
	}
	if len(result.Metadata.Links) > 0 {
		metadata[extractor.MetaLinks] = result.Metadata.Links
	}
	if result.Metadata.Assignee != "" && result.Metadata.Assignee != "null" {
		metadata[extractor.MetaAssignee] = result.Metadata.Assignee
	}

	return &extractor.Item{
		Type:       contentType,
		Content:    extractor.Prefix(contentType) + summary,
		Confidence: result.Confidence,
		RawText:    text,
		Metadata:   metadata,
	}, nil
}

// mapContentType maps the backend's content_type string onto the taxonomy.
// "none" and anything unrecognized map to TypeUnknown.
func mapContentType(s string) extractor.ContentType {
	switch extractor.ContentType(s) {
	case extractor.TypeDecision, extractor.TypeTask, extractor.TypeDeadline,
		extractor.TypeLink, extractor.TypeContext, extractor.TypeRequirement:
		return extractor.ContentType(s)
	default:
		return extractor.TypeUnknown
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
