package storage

import (
	"context"
	"slices"
	"sync"

	"github.com/ignatzorin/proposal-backend/internal/models"
)

// DemoStore хранит данные в памяти процесса. Данные теряются при перезапуске.
type DemoStore struct {
	mu        sync.RWMutex
	proposals []models.SavedProposal
	aes       []models.AccountExecutive
	prompt    string
	hasPrompt bool
}

// NewDemoStore создаёт пустое in-memory хранилище.
func NewDemoStore() *DemoStore {
	return &DemoStore{}
}

func (s *DemoStore) Mode() Mode { return ModeDemo }

func (s *DemoStore) ListProposals(_ context.Context) ([]models.SavedProposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.proposals), nil
}

func (s *DemoStore) SaveProposal(_ context.Context, proposal models.SavedProposal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.proposals = upsertProposal(s.proposals, proposal)
	return nil
}

func (s *DemoStore) DeleteProposal(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.proposals = removeProposal(s.proposals, id)
	return nil
}

func (s *DemoStore) ListAccountExecutives(_ context.Context) ([]models.AccountExecutive, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.aes), nil
}

func (s *DemoStore) SaveAccountExecutives(_ context.Context, aes []models.AccountExecutive) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aes = slices.Clone(aes)
	return nil
}

func (s *DemoStore) GetPrompt(_ context.Context) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prompt, s.hasPrompt, nil
}

func (s *DemoStore) SavePrompt(_ context.Context, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompt = value
	s.hasPrompt = true
	return nil
}
