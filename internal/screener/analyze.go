package screener

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spigell/hr-screener/internal/completion"
	"github.com/spigell/hr-screener/internal/logger"

	"go.uber.org/zap"
)

// Precondition failures for the analyze trigger.
var (
	ErrMissingResumes        = errors.New("no resumes collected")
	ErrMissingJobDescription = errors.New("job description is not set")
)

// Analyze runs exactly one ranking analysis for the user and returns the
// provider's reply. On success the ranking request and the reply are appended
// to the transcript as one atomic pair, which lets subsequent free-text turns
// continue the same conversation with full context. Analyze is deliberately
// not idempotent: every call is an independent re-ask.
func (s *Screener) Analyze(ctx context.Context, user int64) (string, error) {
	resumes := s.store.Resumes(user)
	if len(resumes) == 0 {
		return "", ErrMissingResumes
	}

	job := s.store.JobDescription(user)
	if strings.TrimSpace(job) == "" {
		return "", ErrMissingJobDescription
	}

	s.logger.Info("analyzing candidates",
		zap.Int64("user", user),
		zap.Int("resumes", len(resumes)),
	)

	request := BuildRankingRequest(job, resumes)
	s.logger.Debug("ranking request built",
		zap.Int64("user", user),
		zap.String("request_preview", logger.TruncateForLog(request, s.maxLogLen)),
	)

	answer, err := s.provider.Complete(ctx, []completion.Message{
		{Role: completion.RoleUser, Content: request},
	}, s.maxTokens)
	if err != nil {
		return "", fmt.Errorf("complete ranking request: %w", err)
	}

	s.store.AppendExchange(user,
		completion.Message{Role: completion.RoleUser, Content: request},
		completion.Message{Role: completion.RoleAssistant, Content: answer},
	)

	return answer, nil
}

func (s *Screener) handleAnalyze(ctx context.Context, user int64) error {
	// Precondition failures short-circuit before the progress notice.
	resumes := s.store.Resumes(user)
	if len(resumes) == 0 {
		return s.reply(ctx, user, msgMissingResumes)
	}

	if strings.TrimSpace(s.store.JobDescription(user)) == "" {
		return s.reply(ctx, user, msgMissingJob)
	}

	notice, err := s.responder.Reply(ctx, user, msgAnalyzing)
	if err != nil {
		return err
	}

	answer, err := s.Analyze(ctx, user)

	if delErr := s.responder.Delete(ctx, notice); delErr != nil {
		s.logger.Debug("deleting progress notice failed", zap.Error(delErr))
	}

	if err != nil {
		switch {
		case errors.Is(err, ErrMissingResumes):
			// A concurrent clear/reset emptied the session mid-flight.
			return s.reply(ctx, user, msgMissingResumes)
		case errors.Is(err, ErrMissingJobDescription):
			return s.reply(ctx, user, msgMissingJob)
		default:
			s.logger.Error("analysis failed", zap.Int64("user", user), zap.Error(err))
			return s.reply(ctx, user, msgProviderFailed)
		}
	}

	return s.reply(ctx, user, answer)
}
