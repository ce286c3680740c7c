package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/templui/contacts/internal/model"
	"github.com/templui/contacts/internal/repository"
	"github.com/templui/contacts/internal/storage"
	"github.com/templui/contacts/internal/testutil"
)

type fixture struct {
	users      repository.UserRepository
	contacts   *ContactService
	categories *CategoryService
	pictures   *PictureService
	auth       *AuthService
	profiles   *UserService
	mediaDir   string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewDB(t)
	mediaDir := t.TempDir()
	store, err := storage.NewLocalStorage(mediaDir, storage.MediaPrefix)
	require.NoError(t, err)

	users := repository.NewUserRepository(db)
	categories := NewCategoryService(repository.NewCategoryRepository(db))
	pictures := NewPictureService(store)

	return &fixture{
		users:      users,
		contacts:   NewContactService(repository.NewContactRepository(db), categories, pictures),
		categories: categories,
		pictures:   pictures,
		auth:       NewAuthService(users, "test-secret", false, time.Hour),
		profiles:   NewUserService(users),
		mediaDir:   mediaDir,
	}
}

func (f *fixture) user(t *testing.T, username string) *model.User {
	t.Helper()
	user := &model.User{Username: username, Email: username + "@example.com", CreatedAt: time.Now()}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user
}
