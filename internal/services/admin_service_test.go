package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"avatarforge/internal/models/db_models"
	"avatarforge/pkg/utils"
)

type fakeMailService struct {
	invites []string
	err     error
}

func (f *fakeMailService) SendInviteEmail(to string, _ int) error {
	if f.err != nil {
		return f.err
	}
	f.invites = append(f.invites, to)
	return nil
}

type adminFixture struct {
	svc     AdminServiceInterface
	users   *fakeUserRepo
	credits *fakeCreditRepo
	mail    *fakeMailService
	admin   *db_models.User
	member  *db_models.User
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()

	users := newFakeUserRepo()
	credits := newFakeCreditRepo()
	mail := &fakeMailService{}
	cfg := testConfig()

	admin := &db_models.User{
		ClerkUserID:     "clerk_boss",
		Email:           "boss@example.com",
		IsActive:        true,
		IsAuthenticated: true,
		IsAdmin:         true,
	}
	require.NoError(t, users.Insert(context.Background(), admin))

	member := &db_models.User{
		ClerkUserID: "clerk_member",
		Email:       "member@example.com",
		Credits:     5,
	}
	require.NoError(t, users.Insert(context.Background(), member))
	credits.balances[member.ID] = 5

	svc := NewAdminService(users, NewCreditService(credits), mail, cfg)
	return &adminFixture{svc: svc, users: users, credits: credits, mail: mail, admin: admin, member: member}
}

func TestAdminOperationsRejectNonAdmins(t *testing.T) {
	fx := newAdminFixture(t)
	ctx := context.Background()

	_, err := fx.svc.ListAccounts(ctx, fx.member)
	assert.ErrorIs(t, err, utils.ErrForbidden)

	_, err = fx.svc.AdjustCredits(ctx, fx.member, fx.member.ID, 5, true)
	assert.ErrorIs(t, err, utils.ErrForbidden)

	_, err = fx.svc.SetActive(ctx, fx.member, fx.member.ID, true)
	assert.ErrorIs(t, err, utils.ErrForbidden)

	_, err = fx.svc.SetAdmin(ctx, fx.member, fx.member.ID, true)
	assert.ErrorIs(t, err, utils.ErrForbidden)

	err = fx.svc.DeleteAccount(ctx, fx.member, fx.member.ID)
	assert.ErrorIs(t, err, utils.ErrForbidden)

	_, err = fx.svc.ListAccounts(ctx, nil)
	assert.ErrorIs(t, err, utils.ErrForbidden)
}

func TestAdminListAccounts(t *testing.T) {
	fx := newAdminFixture(t)

	users, err := fx.svc.ListAccounts(context.Background(), fx.admin)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestAdminAdjustCreditsWritesLedger(t *testing.T) {
	fx := newAdminFixture(t)

	user, err := fx.svc.AdjustCredits(context.Background(), fx.admin, fx.member.ID, 10, true)
	require.NoError(t, err)
	assert.Equal(t, 15, user.Credits)

	entries, err := fx.svc.CreditHistory(context.Background(), fx.admin, fx.member.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 10, entries[0].Amount)
	assert.Equal(t, db_models.CreditActionAdminAdd, entries[0].ActionType)
}

func TestAdminRemoveCreditsCanGoNegative(t *testing.T) {
	fx := newAdminFixture(t)

	user, err := fx.svc.AdjustCredits(context.Background(), fx.admin, fx.member.ID, 8, false)
	require.NoError(t, err)
	assert.Equal(t, -3, user.Credits)
}

func TestAdminApprovalUnlocksAccess(t *testing.T) {
	fx := newAdminFixture(t)
	ctx := context.Background()

	assert.False(t, IsAuthorized(fx.member))

	user, err := fx.svc.SetActive(ctx, fx.admin, fx.member.ID, true)
	require.NoError(t, err)
	assert.False(t, IsAuthorized(user), "active alone is not enough")

	user, err = fx.svc.SetAuthenticated(ctx, fx.admin, fx.member.ID, true)
	require.NoError(t, err)
	assert.True(t, IsAuthorized(user))

	// Revoking either flag locks the account out again.
	user, err = fx.svc.SetActive(ctx, fx.admin, fx.member.ID, false)
	require.NoError(t, err)
	assert.False(t, IsAuthorized(user))
}

func TestAdminSetAdminRequiresSuperAdmin(t *testing.T) {
	fx := newAdminFixture(t)
	ctx := context.Background()

	// A regular admin whose email is not on the super-admin list.
	lesser := &db_models.User{
		ClerkUserID: "clerk_lesser",
		Email:       "lesser@example.com",
		IsAdmin:     true,
	}
	require.NoError(t, fx.users.Insert(ctx, lesser))

	_, err := fx.svc.SetAdmin(ctx, lesser, fx.member.ID, true)
	assert.ErrorIs(t, err, utils.ErrForbidden)

	user, err := fx.svc.SetAdmin(ctx, fx.admin, fx.member.ID, true)
	require.NoError(t, err)
	assert.True(t, user.IsAdmin)
}

func TestAdminFlagOnMissingUser(t *testing.T) {
	fx := newAdminFixture(t)

	_, err := fx.svc.SetActive(context.Background(), fx.admin, uuid.New(), true)
	assert.ErrorIs(t, err, utils.ErrAccountNotFound)
}

func TestAdminBulkCreate(t *testing.T) {
	fx := newAdminFixture(t)

	created, err := fx.svc.BulkCreate(context.Background(), fx.admin,
		[]string{"a@example.com", " B@Example.com ", "not-an-email", "c@example.com"}, 7)
	require.NoError(t, err)
	require.Len(t, created, 3)

	for _, user := range created {
		assert.Equal(t, 7, user.Credits)
		assert.True(t, user.IsActive, "imported accounts skip the approval queue")
		assert.NotEmpty(t, user.ClerkUserID)
	}
	assert.Equal(t, "b@example.com", created[1].Email)

	assert.ElementsMatch(t, []string{"a@example.com", "b@example.com", "c@example.com"}, fx.mail.invites)
}

func TestAdminBulkCreateDefaultsCredits(t *testing.T) {
	fx := newAdminFixture(t)

	created, err := fx.svc.BulkCreate(context.Background(), fx.admin, []string{"d@example.com"}, 0)
	require.NoError(t, err)
	assert.Equal(t, testConfig().StartingCredits, created[0].Credits)
}

func TestAdminBulkCreateMailFailureIsNotFatal(t *testing.T) {
	fx := newAdminFixture(t)
	fx.mail.err = errors.New("smtp down")

	created, err := fx.svc.BulkCreate(context.Background(), fx.admin, []string{"e@example.com"}, 3)
	require.NoError(t, err)
	assert.Len(t, created, 1)
}

func TestAdminBulkCreateAllInvalidFails(t *testing.T) {
	fx := newAdminFixture(t)

	_, err := fx.svc.BulkCreate(context.Background(), fx.admin, []string{"nope", ""}, 3)
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestAdminDeleteAccount(t *testing.T) {
	fx := newAdminFixture(t)

	require.NoError(t, fx.svc.DeleteAccount(context.Background(), fx.admin, fx.member.ID))
	remaining, err := fx.svc.ListAccounts(context.Background(), fx.admin)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)

	err = fx.svc.DeleteAccount(context.Background(), fx.admin, fx.member.ID)
	assert.ErrorIs(t, err, utils.ErrAccountNotFound)
}
