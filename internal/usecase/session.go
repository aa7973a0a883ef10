package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

type SessionUseCase interface {
	NewGame(ctx context.Context) (string, tictactoe.SessionView, error)
	GetGame(ctx context.Context, id string) (tictactoe.SessionView, error)
	EndGame(ctx context.Context, id string) error

	MakeMove(ctx context.Context, id string, cell int) (tictactoe.SessionView, error)
	JumpTo(ctx context.Context, id string, step int) (tictactoe.SessionView, error)
	ToggleOrder(ctx context.Context, id string) (tictactoe.SessionView, error)
}

type sessionRepo interface {
	Create(ctx context.Context) (string, *tictactoe.Session, error)
	GetByID(ctx context.Context, id string) (*tictactoe.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

type sessionUseCase struct {
	logger      *slog.Logger
	sessionRepo sessionRepo
}

func NewSessionUseCase(logger *slog.Logger, sessionRepo sessionRepo) SessionUseCase {
	return &sessionUseCase{
		logger:      logger.With("component", "usecase"),
		sessionRepo: sessionRepo,
	}
}

func (that *sessionUseCase) NewGame(ctx context.Context) (string, tictactoe.SessionView, error) {
	id, session, err := that.sessionRepo.Create(ctx)
	if err != nil {
		return "", tictactoe.SessionView{}, fmt.Errorf("failed to create session: %w", err)
	}

	that.logger.Info("session created", "method", "NewGame", "sessionID", id)

	return id, session.View(), nil
}

func (that *sessionUseCase) GetGame(ctx context.Context, id string) (tictactoe.SessionView, error) {
	session, err := that.getSession(ctx, id)
	if err != nil {
		return tictactoe.SessionView{}, err
	}

	return session.View(), nil
}

func (that *sessionUseCase) EndGame(ctx context.Context, id string) error {
	if err := that.sessionRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	that.logger.Info("session deleted", "method", "EndGame", "sessionID", id)

	return nil
}

func (that *sessionUseCase) MakeMove(ctx context.Context, id string, cell int) (tictactoe.SessionView, error) {
	log := that.logger.With("method", "MakeMove", "sessionID", id, "cell", cell)

	session, err := that.getSession(ctx, id)
	if err != nil {
		return tictactoe.SessionView{}, err
	}

	applied, err := session.ApplyMove(cell)
	if err != nil {
		return tictactoe.SessionView{}, fmt.Errorf("failed to make move: %w", err)
	}

	view := session.View()
	if !applied {
		log.Debug("move ignored", "status", view.Status)
		return view, nil
	}

	log.Debug("move applied", "step", view.Step, "status", view.Status)

	return view, nil
}

func (that *sessionUseCase) JumpTo(ctx context.Context, id string, step int) (tictactoe.SessionView, error) {
	session, err := that.getSession(ctx, id)
	if err != nil {
		return tictactoe.SessionView{}, err
	}

	if err = session.JumpTo(step); err != nil {
		return tictactoe.SessionView{}, fmt.Errorf("failed to jump: %w", err)
	}

	return session.View(), nil
}

func (that *sessionUseCase) ToggleOrder(ctx context.Context, id string) (tictactoe.SessionView, error) {
	session, err := that.getSession(ctx, id)
	if err != nil {
		return tictactoe.SessionView{}, err
	}

	session.ToggleOrder()

	return session.View(), nil
}

func (that *sessionUseCase) getSession(ctx context.Context, id string) (*tictactoe.Session, error) {
	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}
