package completion

import "context"

// Message roles understood by completion providers.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one role-tagged entry of a conversation sent to a provider.
type Message struct {
	Role    string
	Content string
}

// Provider is a hosted language-model completion service. Implementations
// send the ordered message history and return a single completion. The model
// identifier is fixed at construction time.
type Provider interface {
	Complete(ctx context.Context, messages []Message, maxTokens int) (string, error)
}
