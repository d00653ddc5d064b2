package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"avatarforge/internal/models/db_models"
	"avatarforge/internal/repositories"
	"avatarforge/pkg/utils"
)

// fakeCreditRepo mirrors the conditional-update semantics of the real
// repository: a debit either lands together with its log entry or not at all.
type fakeCreditRepo struct {
	balances map[uuid.UUID]int
	entries  []db_models.CreditLogEntry

	failNext error
}

func newFakeCreditRepo() *fakeCreditRepo {
	return &fakeCreditRepo{balances: map[uuid.UUID]int{}}
}

func (f *fakeCreditRepo) userRow(userID uuid.UUID) *db_models.User {
	user := &db_models.User{Credits: f.balances[userID]}
	user.ID = userID
	return user
}

func (f *fakeCreditRepo) log(userID uuid.UUID, amount int, actionType, description string) {
	f.entries = append(f.entries, db_models.CreditLogEntry{
		UserID:      userID,
		Amount:      amount,
		ActionType:  actionType,
		Description: description,
	})
}

func (f *fakeCreditRepo) Debit(_ context.Context, userID uuid.UUID, amount int, actionType, description string) (*db_models.User, error) {
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return nil, err
	}
	balance, ok := f.balances[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if balance < amount {
		return nil, repositories.ErrBalanceTooLow
	}
	f.balances[userID] = balance - amount
	f.log(userID, -amount, actionType, description)
	return f.userRow(userID), nil
}

func (f *fakeCreditRepo) Credit(_ context.Context, userID uuid.UUID, amount int, actionType, description string) (*db_models.User, error) {
	return f.AdjustUnchecked(context.Background(), userID, amount, actionType, description)
}

func (f *fakeCreditRepo) AdjustUnchecked(_ context.Context, userID uuid.UUID, delta int, actionType, description string) (*db_models.User, error) {
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return nil, err
	}
	if _, ok := f.balances[userID]; !ok {
		return nil, gorm.ErrRecordNotFound
	}
	f.balances[userID] += delta
	f.log(userID, delta, actionType, description)
	return f.userRow(userID), nil
}

func (f *fakeCreditRepo) History(_ context.Context, userID uuid.UUID) ([]db_models.CreditLogEntry, error) {
	var out []db_models.CreditLogEntry
	for i := len(f.entries) - 1; i >= 0; i-- {
		if f.entries[i].UserID == userID {
			out = append(out, f.entries[i])
		}
	}
	return out, nil
}

func TestDebitHappyPath(t *testing.T) {
	repo := newFakeCreditRepo()
	userID := uuid.New()
	repo.balances[userID] = 5
	svc := NewCreditService(repo)

	user, err := svc.Debit(context.Background(), userID, 1, "Credits used for avatar generation")
	require.NoError(t, err)
	assert.Equal(t, 4, user.Credits)

	require.Len(t, repo.entries, 1)
	assert.Equal(t, -1, repo.entries[0].Amount)
	assert.Equal(t, db_models.CreditActionDeduct, repo.entries[0].ActionType)
}

func TestDebitInsufficientBalanceLeavesNoTrace(t *testing.T) {
	repo := newFakeCreditRepo()
	userID := uuid.New()
	repo.balances[userID] = 0
	svc := NewCreditService(repo)

	_, err := svc.Debit(context.Background(), userID, 1, "Credits used for avatar generation")
	assert.ErrorIs(t, err, utils.ErrInsufficientCredits)

	assert.Equal(t, 0, repo.balances[userID])
	assert.Empty(t, repo.entries, "a failed debit must not log anything")
}

func TestDebitUnknownAccount(t *testing.T) {
	svc := NewCreditService(newFakeCreditRepo())

	_, err := svc.Debit(context.Background(), uuid.New(), 1, "x")
	assert.ErrorIs(t, err, utils.ErrAccountNotFound)
}

func TestDebitRejectsNonPositiveAmounts(t *testing.T) {
	svc := NewCreditService(newFakeCreditRepo())

	_, err := svc.Debit(context.Background(), uuid.New(), 0, "x")
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	_, err = svc.Debit(context.Background(), uuid.New(), -3, "x")
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestRefundRestoresBalance(t *testing.T) {
	repo := newFakeCreditRepo()
	userID := uuid.New()
	repo.balances[userID] = 4
	svc := NewCreditService(repo)

	user, err := svc.Refund(context.Background(), userID, 1, "Refund for failed avatar generation")
	require.NoError(t, err)
	assert.Equal(t, 5, user.Credits)

	require.Len(t, repo.entries, 1)
	assert.Equal(t, 1, repo.entries[0].Amount)
	assert.Equal(t, db_models.CreditActionRefund, repo.entries[0].ActionType)
}

func TestAdjustRemoveMayGoNegative(t *testing.T) {
	repo := newFakeCreditRepo()
	userID := uuid.New()
	repo.balances[userID] = 2
	svc := NewCreditService(repo)

	user, err := svc.Adjust(context.Background(), userID, 5, false)
	require.NoError(t, err)
	assert.Equal(t, -3, user.Credits)

	require.Len(t, repo.entries, 1)
	assert.Equal(t, -5, repo.entries[0].Amount)
	assert.Equal(t, db_models.CreditActionAdminRemove, repo.entries[0].ActionType)
	assert.Equal(t, "Admin removed 5 credits", repo.entries[0].Description)
}

func TestAdjustAdd(t *testing.T) {
	repo := newFakeCreditRepo()
	userID := uuid.New()
	repo.balances[userID] = 0
	svc := NewCreditService(repo)

	user, err := svc.Adjust(context.Background(), userID, 10, true)
	require.NoError(t, err)
	assert.Equal(t, 10, user.Credits)
	assert.Equal(t, db_models.CreditActionAdminAdd, repo.entries[0].ActionType)
	assert.Equal(t, "Admin added 10 credits", repo.entries[0].Description)
}

func TestHistoryIsNewestFirstAndSumsToBalance(t *testing.T) {
	repo := newFakeCreditRepo()
	userID := uuid.New()
	repo.balances[userID] = 5
	svc := NewCreditService(repo)

	_, err := svc.Debit(context.Background(), userID, 1, "first")
	require.NoError(t, err)
	_, err = svc.Debit(context.Background(), userID, 1, "second")
	require.NoError(t, err)
	_, err = svc.Refund(context.Background(), userID, 1, "third")
	require.NoError(t, err)

	entries, err := svc.History(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "third", entries[0].Description)
	assert.Equal(t, "first", entries[2].Description)

	// Starting balance plus every signed delta must equal the final balance.
	sum := 5
	for _, e := range entries {
		sum += e.Amount
	}
	assert.Equal(t, repo.balances[userID], sum)
}
