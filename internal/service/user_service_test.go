package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/shelf_server/internal/model/dto"
	"github.com/qs3c/shelf_server/internal/testutil"
)

func TestUserService_GetProfile(t *testing.T) {
	env, cleanup := setupEnv(t)
	defer cleanup()

	owner := testutil.TestUser(t, env.db, testutil.WithEmail("owner@example.com"))
	fan := testutil.TestUser(t, env.db)
	stranger := testutil.TestUser(t, env.db)
	testutil.TestFollow(t, env.db, fan.ID, owner.ID)
	testutil.TestFollow(t, env.db, owner.ID, stranger.ID)

	t.Run("owner", func(t *testing.T) {
		profile, err := env.users.GetProfile(owner.ID, owner.ID)
		require.NoError(t, err)
		assert.True(t, profile.ProfileStatus.IsOwner)
		assert.False(t, profile.ProfileStatus.IsFollowing)
		assert.Equal(t, "owner@example.com", profile.UserDetails.Email)
		assert.Equal(t, int64(1), profile.Stats.Followers)
		assert.Equal(t, int64(1), profile.Stats.Following)
	})

	t.Run("follower", func(t *testing.T) {
		profile, err := env.users.GetProfile(fan.ID, owner.ID)
		require.NoError(t, err)
		assert.False(t, profile.ProfileStatus.IsOwner)
		assert.True(t, profile.ProfileStatus.IsFollowing)
		assert.Empty(t, profile.UserDetails.Email)
	})

	t.Run("anonymous", func(t *testing.T) {
		profile, err := env.users.GetProfile(0, owner.ID)
		require.NoError(t, err)
		assert.False(t, profile.ProfileStatus.IsOwner)
		assert.False(t, profile.ProfileStatus.IsFollowing)
		assert.Empty(t, profile.UserDetails.Email)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := env.users.GetProfile(0, 9999)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	env, cleanup := setupEnv(t)
	defer cleanup()

	user := testutil.TestUser(t, env.db)

	bio := "reads a lot"
	first := "Ada"
	info, err := env.users.UpdateProfile(user.ID, &dto.UpdateProfileRequest{Bio: &bio, FirstName: &first})
	require.NoError(t, err)
	assert.Equal(t, "reads a lot", info.Bio)
	assert.Equal(t, "Ada", info.FirstName)

	// 未出现的字段保持不变
	last := "Lovelace"
	info, err = env.users.UpdateProfile(user.ID, &dto.UpdateProfileRequest{LastName: &last})
	require.NoError(t, err)
	assert.Equal(t, "Ada", info.FirstName)
	assert.Equal(t, "Lovelace", info.LastName)
	assert.Equal(t, "reads a lot", info.Bio)

	_, err = env.users.UpdateProfile(9999, &dto.UpdateProfileRequest{Bio: &bio})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
