package suite

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/repository"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/usecase"
)

const (
	maxWaitDuration = 30 * time.Second
	maxSessions     = 16
)

type Suite struct {
	*testing.T
	Logger *slog.Logger

	Sessions repository.SessionRepository
	UseCase  usecase.SessionUseCase
}

// New builds a fresh registry and use case for one test.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(func() {
		cancel()
	})

	level := slog.LevelInfo
	if testing.Verbose() {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	sessions := repository.NewSessionRepository(maxSessions)

	return ctx, &Suite{
		T:        t,
		Logger:   logger,
		Sessions: sessions,
		UseCase:  usecase.NewSessionUseCase(logger, sessions),
	}
}
