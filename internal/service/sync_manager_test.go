package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/proposal-backend/internal/ai"
	"github.com/ignatzorin/proposal-backend/internal/models"
	"github.com/ignatzorin/proposal-backend/internal/pkg/apperror"
	"github.com/ignatzorin/proposal-backend/internal/storage"
)

var errStoreDown = errors.New("store down")

func twoAEs() []models.AccountExecutive {
	return []models.AccountExecutive{
		{ID: "ae_a", Name: "Ann", Email: "ann@example.com"},
		{ID: "ae_b", Name: "Bob", Email: "bob@example.com"},
	}
}

func TestSyncManager_LoadSeedsEmptyStore(t *testing.T) {
	ctx := context.Background()
	store := new(mockStore)
	store.On("ListAccountExecutives", ctx).Return([]models.AccountExecutive{}, nil).Once()
	store.On("SaveAccountExecutives", ctx, models.DefaultAccountExecutives()).Return(nil).Once()
	store.On("GetPrompt", ctx).Return("", false, nil).Once()

	m, _ := newTestManager(store)
	require.NoError(t, m.Load(ctx))

	assert.Equal(t, models.DefaultAccountExecutives(), m.AccountExecutives())
	state := m.PromptTemplate()
	assert.Equal(t, ai.DefaultPromptTemplate, state.Value)
	assert.False(t, state.IsCustom)
	store.AssertExpectations(t)
}

func TestSyncManager_LoadUsesStoredState(t *testing.T) {
	ctx := context.Background()
	store := new(mockStore)
	store.On("ListAccountExecutives", ctx).Return(twoAEs(), nil).Once()
	store.On("GetPrompt", ctx).Return("Custom {{firmName}}", true, nil).Once()

	m, _ := newTestManager(store)
	require.NoError(t, m.Load(ctx))

	assert.Equal(t, twoAEs(), m.AccountExecutives())
	assert.Equal(t, PromptState{Value: "Custom {{firmName}}", IsCustom: true}, m.PromptTemplate())
	store.AssertNotCalled(t, "SaveAccountExecutives", mock.Anything, mock.Anything)
}

func TestSyncManager_LoadFailureKeepsDefaults(t *testing.T) {
	ctx := context.Background()
	store := new(mockStore)
	store.On("ListAccountExecutives", ctx).Return(nil, errStoreDown).Once()
	store.On("GetPrompt", ctx).Return("", false, errStoreDown).Once()

	m, _ := newTestManager(store)
	err := m.Load(ctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrStoreUnavailable)
	assert.Equal(t, models.DefaultAccountExecutives(), m.AccountExecutives())
	assert.Equal(t, ai.DefaultPromptTemplate, m.PromptTemplate().Value)
}

func TestSyncManager_ListProposalsSweepsExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	a := models.SavedProposal{ID: "a", CreatedAt: models.MillisOf(now.AddDate(0, 0, -31)), LastModified: models.MillisOf(now.AddDate(0, 0, -31))}
	b := models.SavedProposal{ID: "b", CreatedAt: models.MillisOf(now.AddDate(0, 0, -1)), LastModified: models.MillisOf(now.AddDate(0, 0, -1))}

	store := new(mockStore)
	store.On("ListProposals", ctx).Return([]models.SavedProposal{a, b}, nil).Once()
	store.On("DeleteProposal", mock.Anything, "a").Return(nil).Once()

	m, sweeper := newTestManager(store)
	m.now = func() time.Time { return now }
	notifier := &recordingNotifier{}
	m.SetNotifier(notifier)

	list, err := m.ListProposals(ctx)
	sweeper.Wait()

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "b", list[0].ID)
	assert.Equal(t, []string{EventProposalsExpired}, notifier.Events())
	store.AssertExpectations(t)
}

func TestSyncManager_ListProposalsDegraded(t *testing.T) {
	ctx := context.Background()
	store := new(mockStore)
	store.On("ListProposals", ctx).Return(nil, errStoreDown).Once()

	m, _ := newTestManager(store)
	list, err := m.ListProposals(ctx)

	assert.NotNil(t, list)
	assert.Empty(t, list)
	assert.True(t, apperror.IsStoreUnavailable(err))
	assert.ErrorIs(t, err, errStoreDown)
}

func TestSyncManager_SaveProposal(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	later := created.Add(48 * time.Hour)

	store := new(mockStore)
	store.On("SaveProposal", ctx, mock.AnythingOfType("models.SavedProposal")).Return(nil).Twice()

	m, _ := newTestManager(store)
	m.now = func() time.Time { return created }

	first, err := m.SaveProposal(ctx, models.SavedProposal{FirmData: models.FirmData{FirmName: "Acme"}})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, models.MillisOf(created), first.CreatedAt)
	assert.Equal(t, models.MillisOf(created), first.LastModified)
	store.AssertNotCalled(t, "ListProposals", mock.Anything)

	store.On("ListProposals", ctx).Return([]models.SavedProposal{first}, nil).Once()
	m.now = func() time.Time { return later }
	first.FirmData.ContactName = "Jane"
	second, err := m.SaveProposal(ctx, first)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, models.MillisOf(created), second.CreatedAt)
	assert.Equal(t, models.MillisOf(later), second.LastModified)
	store.AssertExpectations(t)
}

func TestSyncManager_ResaveKeepsStoredCreatedAt(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	stored := models.SavedProposal{
		ID:           "p1",
		CreatedAt:    models.MillisOf(created),
		LastModified: models.MillisOf(created),
		FirmData:     models.FirmData{FirmName: "Acme"},
	}

	cases := []struct {
		name      string
		createdAt models.UnixMillis
	}{
		{"omitted", 0},
		{"forged later", models.MillisOf(created.Add(29 * 24 * time.Hour))},
		{"forged earlier", models.MillisOf(created.Add(-24 * time.Hour))},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			demo := storage.NewDemoStore()
			require.NoError(t, demo.SaveProposal(ctx, stored))

			m, sweeper := newTestManager(demo)
			m.now = func() time.Time { return created.Add(29 * 24 * time.Hour) }

			resave := stored
			resave.CreatedAt = tc.createdAt
			saved, err := m.SaveProposal(ctx, resave)
			require.NoError(t, err)
			assert.Equal(t, models.MillisOf(created), saved.CreatedAt)
			assert.Equal(t, models.MillisOf(created.Add(29*24*time.Hour)), saved.LastModified)

			// 31 день после первого сохранения: предложение истекло, несмотря на правку.
			m.now = func() time.Time { return created.Add(31 * 24 * time.Hour) }
			list, err := m.ListProposals(ctx)
			sweeper.Wait()
			require.NoError(t, err)
			assert.Empty(t, list)

			remaining, err := demo.ListProposals(ctx)
			require.NoError(t, err)
			assert.Empty(t, remaining)
		})
	}
}

func TestSyncManager_SaveProposalNewIDCreatedAt(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	earlier := models.MillisOf(now.Add(-time.Hour))

	m, _ := newTestManager(storage.NewDemoStore())
	m.now = func() time.Time { return now }

	// Новая запись с id от клиента сохраняет переданный createdAt.
	saved, err := m.SaveProposal(ctx, models.SavedProposal{ID: "p-new", CreatedAt: earlier, FirmData: models.FirmData{FirmName: "Acme"}})
	require.NoError(t, err)
	assert.Equal(t, earlier, saved.CreatedAt)

	// createdAt из будущего не принимается.
	saved, err = m.SaveProposal(ctx, models.SavedProposal{ID: "p-future", CreatedAt: models.MillisOf(now.Add(time.Hour)), FirmData: models.FirmData{FirmName: "Acme"}})
	require.NoError(t, err)
	assert.Equal(t, models.MillisOf(now), saved.CreatedAt)

	// Без id createdAt из запроса игнорируется.
	saved, err = m.SaveProposal(ctx, models.SavedProposal{CreatedAt: earlier, FirmData: models.FirmData{FirmName: "Acme"}})
	require.NoError(t, err)
	assert.Equal(t, models.MillisOf(now), saved.CreatedAt)
}

func TestSyncManager_ResaveLookupFailure(t *testing.T) {
	ctx := context.Background()
	store := new(mockStore)
	store.On("ListProposals", ctx).Return(nil, errStoreDown).Once()

	m, _ := newTestManager(store)
	_, err := m.SaveProposal(ctx, models.SavedProposal{ID: "p1", FirmData: models.FirmData{FirmName: "Acme"}})

	assert.True(t, apperror.IsStoreWriteFailed(err))
	store.AssertNotCalled(t, "SaveProposal", mock.Anything, mock.Anything)
}

func TestSyncManager_SaveProposalWriteFailure(t *testing.T) {
	ctx := context.Background()
	store := new(mockStore)
	store.On("SaveProposal", ctx, mock.Anything).Return(errStoreDown).Once()

	m, _ := newTestManager(store)
	notifier := &recordingNotifier{}
	m.SetNotifier(notifier)

	_, err := m.SaveProposal(ctx, models.SavedProposal{FirmData: models.FirmData{FirmName: "Acme"}})
	assert.ErrorIs(t, err, apperror.ErrStoreWriteFailed)
	assert.Empty(t, notifier.Events())
}

func TestSyncManager_SaveProposalValidation(t *testing.T) {
	store := new(mockStore)
	m, _ := newTestManager(store)

	_, err := m.SaveProposal(context.Background(), models.SavedProposal{})
	assert.True(t, apperror.IsValidation(err))
	store.AssertNotCalled(t, "SaveProposal", mock.Anything, mock.Anything)
}

func TestSyncManager_DeleteProposal(t *testing.T) {
	ctx := context.Background()
	store := new(mockStore)
	store.On("DeleteProposal", ctx, "p1").Return(nil).Once()
	store.On("DeleteProposal", ctx, "p2").Return(errStoreDown).Once()

	m, _ := newTestManager(store)
	assert.NoError(t, m.DeleteProposal(ctx, "p1"))
	assert.True(t, apperror.IsStoreWriteFailed(m.DeleteProposal(ctx, "p2")))
	assert.True(t, apperror.IsValidation(m.DeleteProposal(ctx, " ")))
	store.AssertExpectations(t)
}

func TestSyncManager_RemoveLastAccountExecutiveRejected(t *testing.T) {
	ctx := context.Background()
	only := []models.AccountExecutive{{ID: "ae_only", Name: "Solo", Email: "solo@example.com"}}

	store := new(mockStore)
	m, _ := newTestManager(store)
	m.setAccountExecutives(only)

	_, err := m.RemoveAccountExecutive(ctx, "ae_only")

	assert.ErrorIs(t, err, apperror.ErrLastAccountExecutive)
	assert.Equal(t, only, m.AccountExecutives())
	store.AssertNotCalled(t, "SaveAccountExecutives", mock.Anything, mock.Anything)
}

func TestSyncManager_RemoveAccountExecutive(t *testing.T) {
	ctx := context.Background()
	store := new(mockStore)
	store.On("SaveAccountExecutives", ctx, twoAEs()[1:]).Return(nil).Once()

	m, _ := newTestManager(store)
	m.setAccountExecutives(twoAEs())

	left, err := m.RemoveAccountExecutive(ctx, "ae_a")
	require.NoError(t, err)
	assert.Equal(t, twoAEs()[1:], left)

	m.setAccountExecutives(twoAEs())
	_, err = m.RemoveAccountExecutive(ctx, "ae_missing")
	assert.True(t, apperror.IsNotFound(err))
	store.AssertExpectations(t)
}

func TestSyncManager_OptimisticTeamUpdateNotRolledBack(t *testing.T) {
	ctx := context.Background()
	store := new(mockStore)
	store.On("SaveAccountExecutives", ctx, mock.Anything).Return(errStoreDown)

	m, _ := newTestManager(store)
	m.setAccountExecutives(twoAEs())

	ae, err := m.AddAccountExecutive(ctx, "Carol", "Carol@Example.com")
	assert.ErrorIs(t, err, apperror.ErrStoreWriteFailed)
	assert.Regexp(t, `^ae_[0-9a-z]{12}$`, ae.ID)
	assert.Equal(t, "carol@example.com", ae.Email)

	team := m.AccountExecutives()
	require.Len(t, team, 3)
	assert.Equal(t, ae, team[2])
}

func TestSyncManager_SaveAccountExecutivesValidation(t *testing.T) {
	store := new(mockStore)
	m, _ := newTestManager(store)

	_, err := m.SaveAccountExecutives(context.Background(), nil)
	assert.True(t, apperror.IsValidation(err))

	_, err = m.AddAccountExecutive(context.Background(), "", "x@example.com")
	assert.True(t, apperror.IsValidation(err))

	store.AssertNotCalled(t, "SaveAccountExecutives", mock.Anything, mock.Anything)
	assert.Equal(t, models.DefaultAccountExecutives(), m.AccountExecutives())
}

func TestSyncManager_ReconcileAccountExecutives(t *testing.T) {
	ctx := context.Background()
	store := new(mockStore)
	store.On("SaveAccountExecutives", ctx, mock.Anything).Return(errStoreDown).Once()
	store.On("ListAccountExecutives", ctx).Return(twoAEs(), nil).Once()

	m, _ := newTestManager(store)
	_, err := m.SaveAccountExecutives(ctx, []models.AccountExecutive{{ID: "ae_x", Name: "X", Email: "x@example.com"}})
	require.Error(t, err)
	assert.Len(t, m.AccountExecutives(), 1)

	team, err := m.ReconcileAccountExecutives(ctx)
	require.NoError(t, err)
	assert.Equal(t, twoAEs(), team)
	assert.Equal(t, twoAEs(), m.AccountExecutives())
}

func TestSyncManager_ListAccountExecutivesReadsStore(t *testing.T) {
	ctx := context.Background()
	demo := storage.NewDemoStore()
	m, _ := newTestManager(demo)
	require.NoError(t, m.Load(ctx))

	// Другой экземпляр меняет команду в общем хранилище.
	require.NoError(t, demo.SaveAccountExecutives(ctx, twoAEs()))

	team, err := m.ListAccountExecutives(ctx)
	require.NoError(t, err)
	assert.Equal(t, twoAEs(), team)
	assert.Equal(t, twoAEs(), m.AccountExecutives())
}

func TestSyncManager_ListAccountExecutivesFallsBackToMemory(t *testing.T) {
	ctx := context.Background()
	store := new(mockStore)
	store.On("ListAccountExecutives", ctx).Return(nil, errStoreDown).Once()
	store.On("ListAccountExecutives", ctx).Return([]models.AccountExecutive{}, nil).Once()

	m, _ := newTestManager(store)
	m.setAccountExecutives(twoAEs())

	team, err := m.ListAccountExecutives(ctx)
	assert.True(t, apperror.IsStoreUnavailable(err))
	assert.Equal(t, twoAEs(), team)

	team, err = m.ListAccountExecutives(ctx)
	require.NoError(t, err)
	assert.Equal(t, twoAEs(), team)
	store.AssertExpectations(t)
}

func TestSyncManager_PromptLifecycle(t *testing.T) {
	ctx := context.Background()
	store := new(mockStore)
	store.On("SavePrompt", ctx, "Hi {{firmName}}").Return(nil).Once()
	store.On("SavePrompt", ctx, ai.DefaultPromptTemplate).Return(nil).Once()

	m, _ := newTestManager(store)
	notifier := &recordingNotifier{}
	m.SetNotifier(notifier)

	state, err := m.SetPromptTemplate(ctx, "Hi {{firmName}}")
	require.NoError(t, err)
	assert.True(t, state.IsCustom)

	state, err = m.ResetPromptTemplate(ctx)
	require.NoError(t, err)
	assert.False(t, state.IsCustom)
	assert.Equal(t, ai.DefaultPromptTemplate, m.PromptTemplate().Value)
	assert.Equal(t, []string{EventPromptUpdated, EventPromptUpdated}, notifier.Events())

	_, err = m.SetPromptTemplate(ctx, "   ")
	assert.True(t, apperror.IsValidation(err))
	store.AssertExpectations(t)
}

func TestSyncManager_OptimisticPromptNotRolledBack(t *testing.T) {
	ctx := context.Background()
	store := new(mockStore)
	store.On("SavePrompt", ctx, "Draft").Return(errStoreDown).Once()
	store.On("GetPrompt", ctx).Return("Stored", true, nil).Once()

	m, _ := newTestManager(store)
	_, err := m.SetPromptTemplate(ctx, "Draft")
	assert.True(t, apperror.IsStoreWriteFailed(err))
	assert.Equal(t, "Draft", m.PromptTemplate().Value)

	require.NoError(t, m.ReloadPrompt(ctx))
	assert.Equal(t, "Stored", m.PromptTemplate().Value)
}

func TestSyncManager_WithDemoStore(t *testing.T) {
	ctx := context.Background()
	m, sweeper := newTestManager(storage.NewDemoStore())
	require.NoError(t, m.Load(ctx))

	saved, err := m.SaveProposal(ctx, models.SavedProposal{FirmData: models.FirmData{FirmName: "Acme"}})
	require.NoError(t, err)

	list, err := m.ListProposals(ctx)
	sweeper.Wait()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, saved, list[0])
	assert.Equal(t, storage.ModeDemo, m.Mode())
}
