package screener

import (
	"context"
	"errors"
	"strings"

	"github.com/spigell/hr-screener/internal/completion"
	"github.com/spigell/hr-screener/internal/extract"
	"github.com/spigell/hr-screener/internal/session"

	"go.uber.org/zap"
)

// Commands understood by the screener.
const (
	CommandStart   = "start"
	CommandClear   = "clear"
	CommandReset   = "reset"
	CommandAnalyze = "analyze"
)

const defaultMaxResponseTokens = 2000

// MessageRef identifies a delivered reply so it can be deleted later.
type MessageRef string

// Responder delivers outbound text to the originating user. It abstracts the
// message transport; implementations decide what deletion means for them.
type Responder interface {
	Reply(ctx context.Context, user int64, text string) (MessageRef, error)
	Delete(ctx context.Context, ref MessageRef) error
}

// Document is an uploaded file payload.
type Document struct {
	Filename string
	Data     []byte
}

// Update is one inbound event from the message channel. Exactly one of
// Command, Document or Text is expected to be set; anything else is rejected
// as unsupported.
type Update struct {
	User     int64
	Command  string
	Document *Document
	Text     string
}

// Config contains screener settings.
type Config struct {
	// MaxResponseTokens bounds the completion output length.
	MaxResponseTokens int
	// MaxLogLength bounds prompt/response previews in debug logs.
	MaxLogLength int
}

// Deps aggregates the screener's collaborators.
type Deps struct {
	Store     *session.Store
	Provider  completion.Provider
	Extractor extract.Extractor
	Responder Responder
	Logger    *zap.Logger
}

// Screener is the per-user conversational orchestrator. It accumulates
// resumes and a job description per user, runs the one-shot ranking analysis
// and carries the follow-up conversation thread.
type Screener struct {
	store     *session.Store
	provider  completion.Provider
	extractor extract.Extractor
	responder Responder
	logger    *zap.Logger
	maxTokens int
	maxLogLen int
}

func New(cfg *Config, deps *Deps) *Screener {
	maxTokens := defaultMaxResponseTokens
	maxLogLen := 0
	if cfg != nil {
		if cfg.MaxResponseTokens > 0 {
			maxTokens = cfg.MaxResponseTokens
		}
		maxLogLen = cfg.MaxLogLength
	}

	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Screener{
		store:     deps.Store,
		provider:  deps.Provider,
		extractor: deps.Extractor,
		responder: deps.Responder,
		logger:    log,
		maxTokens: maxTokens,
		maxLogLen: maxLogLen,
	}
}

// Dispatch routes one inbound event to completion. Domain failures are
// surfaced to the originating user as replies; the returned error reports
// delivery problems only.
func (s *Screener) Dispatch(ctx context.Context, up Update) error {
	switch {
	case up.Document != nil:
		return s.handleDocument(ctx, up.User, up.Document)
	case up.Command != "":
		return s.handleCommand(ctx, up.User, up.Command)
	case strings.TrimSpace(up.Text) != "":
		return s.handleText(ctx, up.User, up.Text)
	default:
		s.logger.Info("got unsupported update", zap.Int64("user", up.User))
		return s.reply(ctx, up.User, msgUnsupported)
	}
}

func (s *Screener) handleCommand(ctx context.Context, user int64, command string) error {
	s.logger.Info("handling command", zap.String("command", command), zap.Int64("user", user))

	switch command {
	case CommandStart:
		return s.reply(ctx, user, msgWelcome)
	case CommandClear:
		s.store.Clear(user)
		return s.reply(ctx, user, msgCleared)
	case CommandReset:
		s.store.Reset(user)
		return s.reply(ctx, user, msgReset)
	case CommandAnalyze:
		return s.handleAnalyze(ctx, user)
	default:
		return s.reply(ctx, user, msgUnsupported)
	}
}

func (s *Screener) handleDocument(ctx context.Context, user int64, doc *Document) error {
	s.logger.Info("handling document", zap.Int64("user", user), zap.String("filename", doc.Filename))

	if len(s.store.Resumes(user)) >= session.MaxResumes {
		return s.reply(ctx, user, msgTooManyResumes)
	}

	if !strings.HasSuffix(strings.ToLower(doc.Filename), ".pdf") {
		return s.reply(ctx, user, msgOnlyPDF)
	}

	text, err := s.extractor.Extract(ctx, doc.Data)
	if err != nil {
		s.logger.Warn("extraction failed",
			zap.Int64("user", user),
			zap.String("filename", doc.Filename),
			zap.Error(err),
		)
		return s.reply(ctx, user, msgExtractionFailed)
	}

	if err := s.store.AddResume(user, text); err != nil {
		if errors.Is(err, session.ErrCapacityExceeded) {
			return s.reply(ctx, user, msgTooManyResumes)
		}
		return err
	}

	return s.reply(ctx, user, msgFileAccepted)
}

func (s *Screener) reply(ctx context.Context, user int64, text string) error {
	_, err := s.responder.Reply(ctx, user, text)
	return err
}
