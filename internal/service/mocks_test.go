package service

import (
	"context"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/proposal-backend/internal/goroutine"
	"github.com/ignatzorin/proposal-backend/internal/models"
	"github.com/ignatzorin/proposal-backend/internal/storage"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Mode() storage.Mode { return storage.ModeDemo }

func (m *mockStore) ListProposals(ctx context.Context) ([]models.SavedProposal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SavedProposal), args.Error(1)
}

func (m *mockStore) SaveProposal(ctx context.Context, proposal models.SavedProposal) error {
	return m.Called(ctx, proposal).Error(0)
}

func (m *mockStore) DeleteProposal(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockStore) ListAccountExecutives(ctx context.Context) ([]models.AccountExecutive, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AccountExecutive), args.Error(1)
}

func (m *mockStore) SaveAccountExecutives(ctx context.Context, aes []models.AccountExecutive) error {
	return m.Called(ctx, aes).Error(0)
}

func (m *mockStore) GetPrompt(ctx context.Context) (string, bool, error) {
	args := m.Called(ctx)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *mockStore) SavePrompt(ctx context.Context, value string) error {
	return m.Called(ctx, value).Error(0)
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) Broadcast(event string, _ any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) Events() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.events...)
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestManager(store storage.Store) (*SyncManager, *ExpirationSweeper) {
	log := quietLogger()
	sweeper := NewExpirationSweeper(store, goroutine.NewGroup(log), log)
	return NewSyncManager(store, sweeper, log), sweeper
}
