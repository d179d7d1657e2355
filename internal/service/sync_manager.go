package service

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/proposal-backend/internal/ai"
	"github.com/ignatzorin/proposal-backend/internal/models"
	"github.com/ignatzorin/proposal-backend/internal/pkg/apperror"
	"github.com/ignatzorin/proposal-backend/internal/storage"
	"github.com/ignatzorin/proposal-backend/internal/validation"
)

// События синхронизации для открытых редакторов.
const (
	EventProposalSaved            = "proposal.saved"
	EventProposalDeleted          = "proposal.deleted"
	EventProposalsExpired         = "proposals.expired"
	EventAccountExecutivesUpdated = "account_executives.updated"
	EventPromptUpdated            = "prompt.updated"
)

const aeIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// Notifier рассылает события синхронизации.
type Notifier interface {
	Broadcast(event string, data any)
}

type nopNotifier struct{}

func (nopNotifier) Broadcast(string, any) {}

// PromptState текущий шаблон промпта.
type PromptState struct {
	Value    string `json:"value"`
	IsCustom bool   `json:"isCustom"`
}

// SyncManager владеет состоянием команды и промпта процесса и
// проводит все чтения и записи через выбранное хранилище.
//
// Изменения команды и промпта оптимистичны: значение в памяти меняется до
// обращения к хранилищу и не откатывается при ошибке. Мьютекс не
// удерживается во время вызовов хранилища.
type SyncManager struct {
	store    storage.Store
	sweeper  *ExpirationSweeper
	notifier Notifier
	log      logrus.FieldLogger
	now      func() time.Time

	mu     sync.RWMutex
	aes    []models.AccountExecutive
	prompt string
}

// NewSyncManager создаёт менеджер. Состояние заполняется вызовом Load.
func NewSyncManager(store storage.Store, sweeper *ExpirationSweeper, log logrus.FieldLogger) *SyncManager {
	return &SyncManager{
		store:    store,
		sweeper:  sweeper,
		notifier: nopNotifier{},
		log:      log,
		now:      time.Now,
		aes:      models.DefaultAccountExecutives(),
		prompt:   ai.DefaultPromptTemplate,
	}
}

// SetNotifier подключает рассылку событий.
func (m *SyncManager) SetNotifier(n Notifier) {
	if n == nil {
		n = nopNotifier{}
	}
	m.notifier = n
}

// Mode режим хранилища.
func (m *SyncManager) Mode() storage.Mode {
	return m.store.Mode()
}

// Load загружает команду и промпт. Пустая команда заполняется составом по умолчанию
// и сохраняется. При ошибках чтения остаются значения по умолчанию, а ошибка возвращается.
func (m *SyncManager) Load(ctx context.Context) error {
	var errs []error

	aes, err := m.store.ListAccountExecutives(ctx)
	switch {
	case err != nil:
		m.log.WithError(err).Warn("sync: не удалось загрузить команду, используем состав по умолчанию")
		errs = append(errs, storeUnavailable(err))
	case len(aes) == 0:
		defaults := models.DefaultAccountExecutives()
		m.setAccountExecutives(defaults)
		if err := m.store.SaveAccountExecutives(ctx, defaults); err != nil {
			m.log.WithError(err).Warn("sync: не удалось сохранить состав по умолчанию")
			errs = append(errs, storeWriteFailed(err))
		}
	default:
		m.setAccountExecutives(aes)
	}

	if err := m.ReloadPrompt(ctx); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// ListProposals возвращает актуальные предложения, новые первыми. При ошибке
// хранилища возвращает пустой список и ErrStoreUnavailable, а не падает.
func (m *SyncManager) ListProposals(ctx context.Context) ([]models.SavedProposal, error) {
	list, err := m.store.ListProposals(ctx)
	if err != nil {
		m.log.WithError(err).Warn("sync: не удалось загрузить предложения")
		return []models.SavedProposal{}, storeUnavailable(err)
	}

	valid, expired := m.sweeper.Sweep(ctx, list, m.now())
	if len(expired) > 0 {
		m.log.WithField("count", len(expired)).Info("sync: найдены истёкшие предложения")
		m.notifier.Broadcast(EventProposalsExpired, expired)
	}
	return valid, nil
}

// SaveProposal присваивает id, обновляет lastModified и сохраняет предложение.
// createdAt задаётся один раз: для уже сохранённого id берётся из хранилища,
// значение из запроса учитывается только для новой записи и не позже now.
// Ошибка записи возвращается как ErrStoreWriteFailed.
func (m *SyncManager) SaveProposal(ctx context.Context, proposal models.SavedProposal) (models.SavedProposal, error) {
	if err := validation.ValidateNonEmpty("firm name", proposal.FirmData.FirmName); err != nil {
		return models.SavedProposal{}, apperror.Validation(err.Error())
	}

	now := models.MillisOf(m.now())
	proposal.ID = strings.TrimSpace(proposal.ID)
	if proposal.ID == "" {
		proposal.ID = uuid.NewString()
		proposal.CreatedAt = now
	} else {
		createdAt, err := m.storedCreatedAt(ctx, proposal.ID)
		if err != nil {
			m.log.WithError(err).WithField("proposal_id", proposal.ID).Error("sync: не удалось проверить сохранённое предложение")
			return models.SavedProposal{}, storeWriteFailed(err)
		}
		switch {
		case !createdAt.IsZero():
			proposal.CreatedAt = createdAt
		case proposal.CreatedAt.IsZero() || proposal.CreatedAt > now:
			proposal.CreatedAt = now
		}
	}
	proposal.LastModified = now

	if err := m.store.SaveProposal(ctx, proposal); err != nil {
		m.log.WithError(err).WithField("proposal_id", proposal.ID).Error("sync: не удалось сохранить предложение")
		return models.SavedProposal{}, storeWriteFailed(err)
	}

	m.notifier.Broadcast(EventProposalSaved, proposal)
	return proposal, nil
}

// storedCreatedAt перечитывает хранилище и возвращает createdAt записи с данным id.
// Ноль означает, что записи нет. Для записей без createdAt берётся lastModified.
func (m *SyncManager) storedCreatedAt(ctx context.Context, id string) (models.UnixMillis, error) {
	list, err := m.store.ListProposals(ctx)
	if err != nil {
		return 0, err
	}
	for _, p := range list {
		if p.ID != id {
			continue
		}
		if p.CreatedAt.IsZero() {
			return p.LastModified, nil
		}
		return p.CreatedAt, nil
	}
	return 0, nil
}

// DeleteProposal удаляет предложение. Ошибка хранилища возвращается вызывающему.
func (m *SyncManager) DeleteProposal(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperror.Validation("proposal id is required")
	}
	if err := m.store.DeleteProposal(ctx, id); err != nil {
		m.log.WithError(err).WithField("proposal_id", id).Error("sync: не удалось удалить предложение")
		return storeWriteFailed(err)
	}

	m.notifier.Broadcast(EventProposalDeleted, map[string]string{"id": id})
	return nil
}

// ListAccountExecutives читает команду из хранилища и обновляет состав в памяти.
// Если хранилище недоступно, возвращает состав из памяти и ErrStoreUnavailable.
// Пустой ответ хранилища не затирает состав в памяти.
func (m *SyncManager) ListAccountExecutives(ctx context.Context) ([]models.AccountExecutive, error) {
	aes, err := m.store.ListAccountExecutives(ctx)
	if err != nil {
		m.log.WithError(err).Warn("sync: не удалось перечитать команду")
		return m.AccountExecutives(), storeUnavailable(err)
	}
	if len(aes) > 0 {
		m.setAccountExecutives(aes)
	}
	return m.AccountExecutives(), nil
}

// AccountExecutives возвращает копию текущего состава команды из памяти.
func (m *SyncManager) AccountExecutives() []models.AccountExecutive {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.aes)
}

// SaveAccountExecutives заменяет команду целиком.
func (m *SyncManager) SaveAccountExecutives(ctx context.Context, aes []models.AccountExecutive) ([]models.AccountExecutive, error) {
	if err := validation.ValidateAccountExecutives(aes); err != nil {
		return nil, apperror.Validation(err.Error())
	}
	next := slices.Clone(aes)
	m.setAccountExecutives(next)
	return next, m.persistAccountExecutives(ctx, next)
}

// AddAccountExecutive добавляет менеджера с новым id вида ae_<nanoid>.
func (m *SyncManager) AddAccountExecutive(ctx context.Context, name, email string) (models.AccountExecutive, error) {
	ae := models.AccountExecutive{
		Name:  strings.TrimSpace(name),
		Email: strings.ToLower(strings.TrimSpace(email)),
	}
	if err := validation.ValidateAccountExecutive(ae); err != nil {
		return models.AccountExecutive{}, apperror.Validation(err.Error())
	}

	suffix, err := gonanoid.Generate(aeIDAlphabet, 12)
	if err != nil {
		return models.AccountExecutive{}, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось сгенерировать id")
	}
	ae.ID = "ae_" + suffix

	m.mu.Lock()
	if len(m.aes) >= validation.MaxAccountExecutives {
		m.mu.Unlock()
		return models.AccountExecutive{}, apperror.Validation("the team is full")
	}
	m.aes = append(slices.Clone(m.aes), ae)
	next := slices.Clone(m.aes)
	m.mu.Unlock()

	return ae, m.persistAccountExecutives(ctx, next)
}

// RemoveAccountExecutive удаляет менеджера. Последнего менеджера удалить нельзя;
// такая попытка отклоняется до обращения к хранилищу.
func (m *SyncManager) RemoveAccountExecutive(ctx context.Context, id string) ([]models.AccountExecutive, error) {
	m.mu.Lock()
	if len(m.aes) <= 1 {
		m.mu.Unlock()
		return nil, apperror.ErrLastAccountExecutive
	}
	idx := slices.IndexFunc(m.aes, func(ae models.AccountExecutive) bool { return ae.ID == id })
	if idx < 0 {
		m.mu.Unlock()
		return nil, apperror.New(apperror.ErrCodeNotFound, "account executive not found")
	}
	m.aes = slices.Delete(slices.Clone(m.aes), idx, idx+1)
	next := slices.Clone(m.aes)
	m.mu.Unlock()

	return next, m.persistAccountExecutives(ctx, next)
}

// ReconcileAccountExecutives явно перечитывает команду из хранилища.
// В отличие от чтения списка, недоступность хранилища здесь ошибка.
func (m *SyncManager) ReconcileAccountExecutives(ctx context.Context) ([]models.AccountExecutive, error) {
	return m.ListAccountExecutives(ctx)
}

func (m *SyncManager) setAccountExecutives(aes []models.AccountExecutive) {
	m.mu.Lock()
	m.aes = slices.Clone(aes)
	m.mu.Unlock()
}

func (m *SyncManager) persistAccountExecutives(ctx context.Context, aes []models.AccountExecutive) error {
	if err := m.store.SaveAccountExecutives(ctx, aes); err != nil {
		m.log.WithError(err).Error("sync: не удалось сохранить команду")
		return storeWriteFailed(err)
	}
	m.notifier.Broadcast(EventAccountExecutivesUpdated, aes)
	return nil
}

// PromptTemplate возвращает текущий шаблон; IsCustom=false означает шаблон по умолчанию.
func (m *SyncManager) PromptTemplate() PromptState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return PromptState{Value: m.prompt, IsCustom: m.prompt != ai.DefaultPromptTemplate}
}

// SetPromptTemplate меняет общий шаблон, оптимистично.
func (m *SyncManager) SetPromptTemplate(ctx context.Context, value string) (PromptState, error) {
	if err := validation.ValidatePromptTemplate(value); err != nil {
		return PromptState{}, apperror.Validation(err.Error())
	}
	return m.applyPrompt(ctx, value)
}

// ResetPromptTemplate возвращает шаблон по умолчанию.
func (m *SyncManager) ResetPromptTemplate(ctx context.Context) (PromptState, error) {
	return m.applyPrompt(ctx, ai.DefaultPromptTemplate)
}

// ReloadPrompt перечитывает шаблон из хранилища. При ошибке значение в памяти не меняется.
func (m *SyncManager) ReloadPrompt(ctx context.Context) error {
	value, ok, err := m.store.GetPrompt(ctx)
	if err != nil {
		m.log.WithError(err).Warn("sync: не удалось загрузить шаблон промпта")
		return storeUnavailable(err)
	}
	if !ok || strings.TrimSpace(value) == "" {
		value = ai.DefaultPromptTemplate
	}

	m.mu.Lock()
	m.prompt = value
	m.mu.Unlock()
	return nil
}

func (m *SyncManager) applyPrompt(ctx context.Context, value string) (PromptState, error) {
	m.mu.Lock()
	m.prompt = value
	m.mu.Unlock()

	state := m.PromptTemplate()
	if err := m.store.SavePrompt(ctx, value); err != nil {
		m.log.WithError(err).Error("sync: не удалось сохранить шаблон промпта")
		return state, storeWriteFailed(err)
	}

	m.notifier.Broadcast(EventPromptUpdated, state)
	return state, nil
}

func storeUnavailable(err error) error {
	return apperror.Wrap(err, apperror.ErrCodeStoreUnavailable, apperror.ErrStoreUnavailable.Message)
}

func storeWriteFailed(err error) error {
	return apperror.Wrap(err, apperror.ErrCodeStoreWriteFailed, apperror.ErrStoreWriteFailed.Message)
}
