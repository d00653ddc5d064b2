package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"avatarforge/internal/models/db_models"
	"avatarforge/internal/models/request_models"
	"avatarforge/pkg/utils"
)

func strPtr(s string) *string { return &s }

func seedStoredAvatar(repo *fakeAvatarRepo, owner *db_models.User) *db_models.Avatar {
	avatar := &db_models.Avatar{
		UserID:          owner.ID,
		ClerkUserID:     owner.ClerkUserID,
		Name:            "Sarah - Designer",
		Details:         db_models.MarshalDetails(map[string]string{"name": "Sarah", "career": "Designer"}),
		Story:           db_models.MarshalSection(db_models.Section{Headline: "Story", Points: []string{"a"}}),
		PainPoints:      db_models.MarshalSection(db_models.Section{Headline: "Pains", Points: []string{"b"}}),
		TargetAudience:  "designers",
		HelpDescription: "win clients",
	}
	avatar.ID = uuid.New()
	repo.avatars[avatar.ID] = avatar
	return avatar
}

func avatarTestUser(admin bool) *db_models.User {
	user := &db_models.User{ClerkUserID: "clerk_1", IsActive: true, IsAuthenticated: true, IsAdmin: admin}
	user.ID = uuid.New()
	return user
}

func TestAvatarListScopedToOwner(t *testing.T) {
	repo := newFakeAvatarRepo()
	owner := avatarTestUser(false)
	other := avatarTestUser(false)
	seedStoredAvatar(repo, owner)
	seedStoredAvatar(repo, owner)
	seedStoredAvatar(repo, other)

	svc := NewAvatarService(repo)
	avatars, err := svc.List(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.Len(t, avatars, 2)
}

func TestAvatarUpdateReplacesWholeSections(t *testing.T) {
	repo := newFakeAvatarRepo()
	owner := avatarTestUser(false)
	avatar := seedStoredAvatar(repo, owner)
	svc := NewAvatarService(repo)

	patch := &request_models.UpdateAvatarRequest{
		Story: &db_models.Section{Headline: "Rewritten", Points: []string{"x", "y"}},
	}
	updated, err := svc.Update(context.Background(), owner, avatar.ID, patch)
	require.NoError(t, err)

	story := db_models.NormalizeSection(updated.Story)
	assert.Equal(t, "Rewritten", story.Headline)
	assert.Equal(t, []string{"x", "y"}, story.Points)

	// Untouched sections keep their stored value.
	pains := db_models.NormalizeSection(updated.PainPoints)
	assert.Equal(t, "Pains", pains.Headline)
	assert.Equal(t, "designers", updated.TargetAudience)
}

func TestAvatarUpdateRecomputesNameFromDetails(t *testing.T) {
	repo := newFakeAvatarRepo()
	owner := avatarTestUser(false)
	avatar := seedStoredAvatar(repo, owner)
	svc := NewAvatarService(repo)

	patch := &request_models.UpdateAvatarRequest{
		Details: map[string]string{"name": "Maya", "career": "Coach"},
	}
	updated, err := svc.Update(context.Background(), owner, avatar.ID, patch)
	require.NoError(t, err)
	assert.Equal(t, "Maya - Coach", updated.Name)
}

func TestAvatarUpdateExplicitNameWins(t *testing.T) {
	repo := newFakeAvatarRepo()
	owner := avatarTestUser(false)
	avatar := seedStoredAvatar(repo, owner)
	svc := NewAvatarService(repo)

	patch := &request_models.UpdateAvatarRequest{
		Name:    strPtr("Custom Name"),
		Details: map[string]string{"name": "Maya", "career": "Coach"},
	}
	updated, err := svc.Update(context.Background(), owner, avatar.ID, patch)
	require.NoError(t, err)
	assert.Equal(t, "Custom Name", updated.Name)
}

func TestAvatarUpdateForeignAvatarForbidden(t *testing.T) {
	repo := newFakeAvatarRepo()
	owner := avatarTestUser(false)
	avatar := seedStoredAvatar(repo, owner)
	svc := NewAvatarService(repo)

	stranger := avatarTestUser(false)
	_, err := svc.Update(context.Background(), stranger, avatar.ID, &request_models.UpdateAvatarRequest{})
	assert.ErrorIs(t, err, utils.ErrForbidden)
}

func TestAvatarUpdateMissingAvatar(t *testing.T) {
	svc := NewAvatarService(newFakeAvatarRepo())
	owner := avatarTestUser(false)

	_, err := svc.Update(context.Background(), owner, uuid.New(), &request_models.UpdateAvatarRequest{})
	assert.ErrorIs(t, err, utils.ErrAvatarNotFound)
}

func TestAvatarDelete(t *testing.T) {
	repo := newFakeAvatarRepo()
	owner := avatarTestUser(false)
	avatar := seedStoredAvatar(repo, owner)
	svc := NewAvatarService(repo)

	require.NoError(t, svc.Delete(context.Background(), owner, avatar.ID))
	assert.Empty(t, repo.avatars)
}

func TestAvatarDeleteByAdmin(t *testing.T) {
	repo := newFakeAvatarRepo()
	owner := avatarTestUser(false)
	avatar := seedStoredAvatar(repo, owner)
	svc := NewAvatarService(repo)

	admin := avatarTestUser(true)
	require.NoError(t, svc.Delete(context.Background(), admin, avatar.ID))
	assert.Empty(t, repo.avatars)
}

func TestAvatarDeleteForeignAvatarForbidden(t *testing.T) {
	repo := newFakeAvatarRepo()
	owner := avatarTestUser(false)
	avatar := seedStoredAvatar(repo, owner)
	svc := NewAvatarService(repo)

	stranger := avatarTestUser(false)
	err := svc.Delete(context.Background(), stranger, avatar.ID)
	assert.ErrorIs(t, err, utils.ErrForbidden)
	assert.Len(t, repo.avatars, 1)
}
