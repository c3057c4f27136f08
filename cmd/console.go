package cmd

import (
	"context"
	"fmt"
	"sync"

	"github.com/spigell/hr-screener/internal/screener"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// consoleResponder implements screener.Responder on stdout. Printed lines
// cannot be taken back, so Delete only records the request.
type consoleResponder struct {
	mu     sync.Mutex
	logger *zap.Logger
}

func newConsoleResponder(logger *zap.Logger) *consoleResponder {
	return &consoleResponder{logger: logger}
}

func (r *consoleResponder) Reply(_ context.Context, user int64, text string) (screener.MessageRef, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Printf("bot> %s\n", text)

	ref := screener.MessageRef(uuid.NewString())
	r.logger.Debug("reply delivered", zap.Int64("user", user), zap.String("ref", string(ref)))

	return ref, nil
}

func (r *consoleResponder) Delete(_ context.Context, ref screener.MessageRef) error {
	r.logger.Debug("message deletion is not supported on the console", zap.String("ref", string(ref)))
	return nil
}
