package storage_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avidian/mvc/pkg/storage"
)

// fakeS3 serves the path-style subset of the S3 API used by the backend.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := strings.TrimPrefix(r.URL.Path, "/")
	switch r.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.objects[key] = body
		f.types[key] = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		data, ok := f.objects[key]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`)
			return
		}
		_, _ = w.Write(data)
	case http.MethodHead:
		if _, ok := f.objects[key]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	case http.MethodDelete:
		delete(f.objects, key)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func TestS3(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	fake := &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	store, err := storage.NewS3(storage.S3Config{
		Bucket:    "bucket",
		AccessKey: "key",
		SecretKey: "secret",
		Endpoint:  srv.URL,
		Prefix:    "app/",
		PathStyle: true,
	})
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, "docs/readme.txt", []byte("hello s3")))

	fake.mu.Lock()
	require.Equal(t, []byte("hello s3"), fake.objects["bucket/app/docs/readme.txt"])
	require.Contains(t, fake.types["bucket/app/docs/readme.txt"], "text/plain")
	fake.mu.Unlock()

	data, err := store.Get(ctx, "docs/readme.txt")
	require.NoError(t, err)
	require.Equal(t, "hello s3", string(data))

	ok, err := store.Exists(ctx, "docs/readme.txt")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, store.Delete(ctx, "docs/readme.txt"))

	ok, err = store.Exists(ctx, "docs/readme.txt")
	require.NoError(t, err)
	require.False(t, ok)

	_, err = store.Get(ctx, "docs/readme.txt")
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.ErrorIs(t, store.Delete(ctx, "docs/readme.txt"), storage.ErrNotFound)
}

func TestNewS3InvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := storage.NewS3(storage.S3Config{Bucket: "b"})
	require.ErrorIs(t, err, storage.ErrInvalidConfig)
}
