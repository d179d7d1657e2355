package storage

import (
	"context"
	"errors"

	"github.com/ignatzorin/proposal-backend/internal/models"
)

// Mode режим хранилища, выбирается один раз при запуске.
type Mode string

// Mode константы режимов
const (
	ModeDemo   Mode = "demo"
	ModeLocal  Mode = "local"
	ModeRemote Mode = "remote"
)

// Ключи локального key/value хранилища.
const (
	KeyProposals         = "taxdome_proposals_local_v1"
	KeyAccountExecutives = "taxdome_aes_local_v2"
	KeyPromptTemplate    = "taxdome_prompt_local_v1"
)

// ErrUnknownMode возвращается фабрикой для неизвестного STORAGE_MODE.
var ErrUnknownMode = errors.New("storage: неизвестный режим хранилища")

// Store единый интерфейс хранилища для предложений, команды и промпта.
// Реализации не переключаются на другое хранилище при ошибке.
type Store interface {
	Mode() Mode

	ListProposals(ctx context.Context) ([]models.SavedProposal, error)
	// SaveProposal вставляет или заменяет предложение по id.
	SaveProposal(ctx context.Context, proposal models.SavedProposal) error
	DeleteProposal(ctx context.Context, id string) error

	ListAccountExecutives(ctx context.Context) ([]models.AccountExecutive, error)
	// SaveAccountExecutives заменяет список целиком.
	SaveAccountExecutives(ctx context.Context, aes []models.AccountExecutive) error

	// GetPrompt возвращает сохранённый шаблон; ok=false, если шаблон не настроен.
	GetPrompt(ctx context.Context) (value string, ok bool, err error)
	SavePrompt(ctx context.Context, value string) error
}

// Pinger реализуют хранилища, которые умеют проверять соединение.
type Pinger interface {
	Ping(ctx context.Context) error
}

func upsertProposal(list []models.SavedProposal, p models.SavedProposal) []models.SavedProposal {
	for i := range list {
		if list[i].ID == p.ID {
			list[i] = p
			return list
		}
	}
	return append(list, p)
}

func removeProposal(list []models.SavedProposal, id string) []models.SavedProposal {
	out := list[:0]
	for _, p := range list {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}
