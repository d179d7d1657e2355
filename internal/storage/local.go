package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ignatzorin/proposal-backend/internal/models"
)

// KeyValue движок локального хранилища. Значения хранятся как JSON.
type KeyValue interface {
	// Get возвращает значение ключа; ok=false, если ключа нет.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
}

// LocalStore хранит три коллекции под фиксированными ключами и
// декодирует JSON при каждом обращении.
type LocalStore struct {
	kv KeyValue
	// mu сериализует read-modify-write для предложений внутри процесса.
	mu sync.Mutex
}

// NewLocalStore создаёт локальное хранилище поверх key/value движка.
func NewLocalStore(kv KeyValue) *LocalStore {
	return &LocalStore{kv: kv}
}

func (s *LocalStore) Mode() Mode { return ModeLocal }

func (s *LocalStore) ListProposals(ctx context.Context) ([]models.SavedProposal, error) {
	var list []models.SavedProposal
	if _, err := s.load(ctx, KeyProposals, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *LocalStore) SaveProposal(ctx context.Context, proposal models.SavedProposal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.ListProposals(ctx)
	if err != nil {
		return err
	}
	return s.store(ctx, KeyProposals, upsertProposal(list, proposal))
}

func (s *LocalStore) DeleteProposal(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.ListProposals(ctx)
	if err != nil {
		return err
	}
	return s.store(ctx, KeyProposals, removeProposal(list, id))
}

func (s *LocalStore) ListAccountExecutives(ctx context.Context) ([]models.AccountExecutive, error) {
	var list []models.AccountExecutive
	if _, err := s.load(ctx, KeyAccountExecutives, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *LocalStore) SaveAccountExecutives(ctx context.Context, aes []models.AccountExecutive) error {
	if aes == nil {
		aes = []models.AccountExecutive{}
	}
	return s.store(ctx, KeyAccountExecutives, aes)
}

func (s *LocalStore) GetPrompt(ctx context.Context) (string, bool, error) {
	var value string
	ok, err := s.load(ctx, KeyPromptTemplate, &value)
	if err != nil {
		return "", false, err
	}
	return value, ok, nil
}

func (s *LocalStore) SavePrompt(ctx context.Context, value string) error {
	return s.store(ctx, KeyPromptTemplate, value)
}

// Ping проверяет движок, если он это поддерживает.
func (s *LocalStore) Ping(ctx context.Context) error {
	if p, ok := s.kv.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

func (s *LocalStore) load(ctx context.Context, key string, dst any) (bool, error) {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("storage: не удалось прочитать %s: %w", key, err)
	}
	if !ok || len(raw) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("storage: повреждено значение %s: %w", key, err)
	}
	return true, nil
}

func (s *LocalStore) store(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("storage: не удалось сериализовать %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("storage: не удалось записать %s: %w", key, err)
	}
	return nil
}
