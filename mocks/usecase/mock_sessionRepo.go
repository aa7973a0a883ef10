package usecase

import (
	"context"
	"testing"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
	"github.com/stretchr/testify/mock"
)

// MocksessionRepo is a mock of the use case's session repository dependency.
type MocksessionRepo struct {
	mock.Mock
}

func NewMocksessionRepo(t *testing.T) *MocksessionRepo {
	t.Helper()

	m := &MocksessionRepo{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (that *MocksessionRepo) Create(ctx context.Context) (string, *tictactoe.Session, error) {
	ret := that.Called(ctx)

	session, _ := ret.Get(1).(*tictactoe.Session)

	return ret.String(0), session, ret.Error(2)
}

func (that *MocksessionRepo) GetByID(ctx context.Context, id string) (*tictactoe.Session, error) {
	ret := that.Called(ctx, id)

	session, _ := ret.Get(0).(*tictactoe.Session)

	return session, ret.Error(1)
}

func (that *MocksessionRepo) DeleteByID(ctx context.Context, id string) error {
	ret := that.Called(ctx, id)

	return ret.Error(0)
}
