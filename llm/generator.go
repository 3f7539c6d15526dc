package llm

import "context"

// GenerateOptions are the sampling settings of one model call.
type GenerateOptions struct {
	Temperature     float32
	MaxOutputTokens int32
}

// Generator turns a prompt into free text. Implementations make exactly one attempt.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}

var (
	InsightsOptions        = GenerateOptions{Temperature: 0.7, MaxOutputTokens: 500}
	ForecastOptions        = GenerateOptions{Temperature: 0.4, MaxOutputTokens: 800}
	RecommendationsOptions = GenerateOptions{Temperature: 0.7, MaxOutputTokens: 600}
	QueryOptions           = GenerateOptions{Temperature: 0.5, MaxOutputTokens: 400}
)
