package llm

import "context"

// ChatModel is a minimal abstraction for chat-based LLMs used by the domain.
// It intentionally hides concrete providers to preserve dependency direction.
type ChatModel interface {
	// AskJSON sends a system and user prompt and requests a single
	// JSON-object completion at low sampling temperature. The returned
	// string is the raw model reply; callers parse and validate it.
	AskJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
