package screener

import (
	"context"
	"strings"

	"github.com/spigell/hr-screener/internal/completion"

	"go.uber.org/zap"
)

// phase of a user's session, recomputed from stored state on every free-text
// event rather than kept as a separate field.
type phase int

const (
	// phaseAwaitingJob means the user has not supplied a job description yet.
	phaseAwaitingJob phase = iota
	// phaseChatting means the job description exists and free text continues
	// the conversation thread.
	phaseChatting
)

func (s *Screener) phase(user int64) phase {
	if strings.TrimSpace(s.store.JobDescription(user)) == "" {
		return phaseAwaitingJob
	}
	return phaseChatting
}

// handleText routes one free-text message: the first text in a session is
// captured verbatim as the job description, everything after that is a chat
// turn sent to the provider with the full transcript as context.
func (s *Screener) handleText(ctx context.Context, user int64, text string) error {
	if s.phase(user) == phaseAwaitingJob {
		s.logger.Info("capturing job description", zap.Int64("user", user))
		s.store.SetJobDescription(user, text)
		return s.reply(ctx, user, msgJobAccepted)
	}

	// The user turn is committed before the call; a failed call leaves it in
	// the transcript.
	s.store.AppendTranscript(user, completion.Message{Role: completion.RoleUser, Content: text})
	history := s.store.Transcript(user)

	s.logger.Info("continuing conversation",
		zap.Int64("user", user),
		zap.Int("history_length", len(history)),
	)

	answer, err := s.provider.Complete(ctx, history, s.maxTokens)
	if err != nil {
		s.logger.Error("chat completion failed", zap.Int64("user", user), zap.Error(err))
		return s.reply(ctx, user, msgProviderFailed)
	}

	s.store.AppendTranscript(user, completion.Message{Role: completion.RoleAssistant, Content: answer})

	return s.reply(ctx, user, answer)
}
