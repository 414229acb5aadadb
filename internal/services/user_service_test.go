package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/artwork-tools/artwork-admin/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Get(t *testing.T) {
	env := newTestEnv(t)
	svc := env.userService()
	plain := testutil.CreateUser(t, env.db, []string{"user"})
	viewer := testutil.CreateUser(t, env.db, nil, "view users")
	other := testutil.CreateUser(t, env.db, nil)

	detail, err := svc.Get(context.Background(), testutil.Actor(t, env.db, plain), plain.ID)
	require.NoError(t, err)
	assert.Equal(t, plain.ID, detail.User.ID)
	assert.NotEmpty(t, detail.AvailableRoles)
	assert.NotEmpty(t, detail.AvailablePermissions)

	_, err = svc.Get(context.Background(), testutil.Actor(t, env.db, plain), other.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Get(context.Background(), testutil.Actor(t, env.db, viewer), other.ID)
	assert.NoError(t, err)

	_, err = svc.Get(context.Background(), testutil.Actor(t, env.db, viewer), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserService_Update_Profile(t *testing.T) {
	env := newTestEnv(t)
	svc := env.userService()
	user := testutil.CreateUser(t, env.db, []string{"user"})

	updated, err := svc.Update(context.Background(), testutil.Actor(t, env.db, user), user.ID, UpdateUserInput{
		FirstName: ptr("  Grace "),
		Position:  ptr("Stage manager"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Grace", updated.FirstName)
	assert.Equal(t, "Stage manager", updated.Position)
	assert.Equal(t, user.LastName, updated.LastName)
}

func TestUserService_Update_Grants(t *testing.T) {
	env := newTestEnv(t)
	svc := env.userService()
	manager := testutil.CreateUser(t, env.db, []string{"manager"})
	admin := testutil.CreateUser(t, env.db, []string{"admin"})
	target := testutil.CreateUser(t, env.db, []string{"user"})
	actor := testutil.Actor(t, env.db, manager)

	t.Run("grants held permissions", func(t *testing.T) {
		updated, err := svc.Update(context.Background(), actor, target.ID, UpdateUserInput{
			Roles:       &[]string{"manager"},
			Permissions: &[]string{"view users"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"manager"}, updated.RoleNames())
		assert.Equal(t, []string{"view users"}, updated.PermissionNames())
	})

	t.Run("cannot grant superuser role", func(t *testing.T) {
		_, err := svc.Update(context.Background(), actor, target.ID, UpdateUserInput{Roles: &[]string{"admin"}})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "roles")
	})

	t.Run("cannot grant missing permission", func(t *testing.T) {
		_, err := svc.Update(context.Background(), actor, target.ID, UpdateUserInput{Permissions: &[]string{"delete users"}})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "permissions")
	})

	t.Run("cannot grant role bundling missing permissions", func(t *testing.T) {
		editor := testutil.CreateUser(t, env.db, nil, "view users", "update users")
		_, err := svc.Update(context.Background(), testutil.Actor(t, env.db, editor), target.ID, UpdateUserInput{Roles: &[]string{"manager"}})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, `You may not grant the "manager" role.`, verr.Fields["roles"])
	})

	t.Run("cannot touch superusers", func(t *testing.T) {
		_, err := svc.Update(context.Background(), actor, admin.ID, UpdateUserInput{FirstName: ptr("Mallory")})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("cannot change own grants", func(t *testing.T) {
		_, err := svc.Update(context.Background(), actor, manager.ID, UpdateUserInput{Permissions: &[]string{"view users"}})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("plain user cannot change grants", func(t *testing.T) {
		plain := testutil.CreateUser(t, env.db, []string{"user"})
		_, err := svc.Update(context.Background(), testutil.Actor(t, env.db, plain), plain.ID, UpdateUserInput{Roles: &[]string{"manager"}})
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestUserService_Update_PhotoReplacement(t *testing.T) {
	env := newTestEnv(t)
	svc := env.userService()
	user := testutil.CreateUser(t, env.db, nil)
	actor := testutil.Actor(t, env.db, user)

	first, err := svc.Update(context.Background(), actor, user.ID, UpdateUserInput{
		Photo: &Upload{Filename: "me.png", Size: 4, Content: strings.NewReader("png1")},
	})
	require.NoError(t, err)
	require.NotEmpty(t, first.ProfilePhotoPath)

	second, err := svc.Update(context.Background(), actor, user.ID, UpdateUserInput{
		Photo: &Upload{Filename: "me.jpg", Size: 4, Content: strings.NewReader("jpg2")},
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.ProfilePhotoPath, second.ProfilePhotoPath)

	_, err = os.Stat(filepath.Join(env.storageRoot, first.ProfilePhotoPath))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(env.storageRoot, second.ProfilePhotoPath))
	assert.NoError(t, err)

	_, err = svc.Update(context.Background(), actor, user.ID, UpdateUserInput{
		Photo: &Upload{Filename: "me.exe", Size: 4, Content: strings.NewReader("MZ")},
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "photo")
}

func TestUserService_Delete(t *testing.T) {
	env := newTestEnv(t)
	svc := env.userService()
	admin := testutil.CreateUser(t, env.db, []string{"admin"})
	deleter := testutil.CreateUser(t, env.db, nil, "delete users")
	target := testutil.CreateUser(t, env.db, []string{"user"})

	assert.ErrorIs(t, svc.Delete(context.Background(), testutil.Actor(t, env.db, deleter), deleter.ID), ErrForbidden)
	assert.ErrorIs(t, svc.Delete(context.Background(), testutil.Actor(t, env.db, deleter), admin.ID), ErrForbidden)

	require.NoError(t, svc.Delete(context.Background(), testutil.Actor(t, env.db, deleter), target.ID))
	_, err := env.users.FindByID(target.ID)
	assert.Error(t, err)
}
