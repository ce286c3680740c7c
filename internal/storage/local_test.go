package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/contacts/internal/config"
)

func TestLocalStorage_SaveServeDelete(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStorage(root, MediaPrefix)
	require.NoError(t, err)
	ctx := context.Background()

	key := "pictures/2025/01/abc.png"
	require.NoError(t, store.Save(ctx, key, strings.NewReader("image-bytes"), "image/png"))

	data, err := os.ReadFile(filepath.Join(root, "pictures", "2025", "01", "abc.png"))
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))
	assert.Equal(t, "/media/pictures/2025/01/abc.png", store.URL(ctx, key))

	rec := httptest.NewRecorder()
	store.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/media/"+key, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Equal(t, "image-bytes", string(body))

	require.NoError(t, store.Delete(ctx, key))
	_, err = os.Stat(filepath.Join(root, "pictures", "2025", "01", "abc.png"))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, store.Delete(ctx, key), "deleting twice is fine")
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), MediaPrefix)
	require.NoError(t, err)
	ctx := context.Background()

	for _, key := range []string{"", "../escape.png", "/abs.png", "a//b.png", "pictures/.hidden", "a/../b.png"} {
		assert.ErrorIs(t, store.Save(ctx, key, strings.NewReader("x"), ""), ErrInvalidKey, key)
	}
}

func TestLocalStorage_HandlerHidesDirectories(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), MediaPrefix)
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), "pictures/a.png", strings.NewReader("x"), ""))

	for _, path := range []string{"/media/pictures/", "/media/pictures", "/media/missing.png"} {
		rec := httptest.NewRecorder()
		store.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
}

func TestNew_SelectsDriver(t *testing.T) {
	store, err := New(&config.Config{StorageDriver: config.StorageDriverLocal, UploadDir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &LocalStorage{}, store)

	_, err = New(&config.Config{StorageDriver: "ftp"})
	assert.Error(t, err)
}
