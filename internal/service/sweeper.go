package service

import (
	"context"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/proposal-backend/internal/goroutine"
	"github.com/ignatzorin/proposal-backend/internal/models"
)

// ProposalDeleter удаляет предложение по id.
type ProposalDeleter interface {
	DeleteProposal(ctx context.Context, id string) error
}

// ExpirationSweeper отбрасывает предложения старше окна хранения при чтении
// и удаляет их из хранилища в фоне. Таймера нет: очистка происходит только при чтении.
type ExpirationSweeper struct {
	deleter   ProposalDeleter
	group     *goroutine.Group
	retention time.Duration
	log       logrus.FieldLogger
}

// NewExpirationSweeper создаёт sweeper с окном хранения ProposalRetentionDays.
func NewExpirationSweeper(deleter ProposalDeleter, group *goroutine.Group, log logrus.FieldLogger) *ExpirationSweeper {
	return &ExpirationSweeper{
		deleter:   deleter,
		group:     group,
		retention: models.ProposalRetentionDays * 24 * time.Hour,
		log:       log,
	}
}

// Sweep делит предложения на актуальные и истёкшие. Актуальные возвращаются
// отсортированными по lastModified по убыванию. Для каждого истёкшего
// запускается удаление; его ошибки только логируются и не влияют на результат.
func (s *ExpirationSweeper) Sweep(ctx context.Context, proposals []models.SavedProposal, now time.Time) ([]models.SavedProposal, []string) {
	valid := make([]models.SavedProposal, 0, len(proposals))
	var expired []string

	for _, p := range proposals {
		if p.IsExpired(now, s.retention) {
			expired = append(expired, p.ID)
			continue
		}
		valid = append(valid, p)
	}

	slices.SortStableFunc(valid, func(a, b models.SavedProposal) int {
		switch {
		case a.LastModified > b.LastModified:
			return -1
		case a.LastModified < b.LastModified:
			return 1
		default:
			return 0
		}
	})

	for _, id := range expired {
		s.deleteAsync(ctx, id)
	}

	return valid, expired
}

func (s *ExpirationSweeper) deleteAsync(ctx context.Context, id string) {
	s.group.GoWithContext(ctx, func(ctx context.Context) {
		if err := s.deleter.DeleteProposal(ctx, id); err != nil {
			s.log.WithError(err).WithField("proposal_id", id).Warn("sweeper: не удалось удалить истёкшее предложение")
			return
		}
		s.log.WithField("proposal_id", id).Info("sweeper: истёкшее предложение удалено")
	})
}

// Wait дожидается завершения запущенных удалений.
func (s *ExpirationSweeper) Wait() {
	s.group.Wait()
}
