package openai

import "context"

// IOpenAI defines the interface for the OpenAI chat completions client.
// Implementations are safe for concurrent use.
type IOpenAI interface {
	CreateChatCompletion(ctx context.Context, req *Request) (*Response, error)
}

// New creates a new OpenAI client with the given configuration
func New(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Client{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: cfg.BaseURL,
		client:  cfg.HTTPClient,
	}, nil
}
