package s3_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipekit/internal/config"
	"recipekit/internal/port"
	"recipekit/internal/storage/s3"
)

type recorded struct {
	method      string
	path        string
	contentType string
	body        string
}

func fakeS3(t *testing.T) (*httptest.Server, func() []recorded) {
	t.Helper()
	var mu sync.Mutex
	var calls []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		calls = append(calls, recorded{r.Method, r.URL.Path, r.Header.Get("Content-Type"), string(body)})
		mu.Unlock()
		switch r.Method {
		case http.MethodPut:
			w.Header().Set("ETag", `"abc"`)
			w.WriteHeader(http.StatusOK)
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, func() []recorded {
		mu.Lock()
		defer mu.Unlock()
		return append([]recorded(nil), calls...)
	}
}

func newClient(t *testing.T, endpoint string) port.ObjectStorage {
	t.Helper()
	store, err := s3.NewS3Client(&config.ArchiveConfig{
		Region:    "us-east-1",
		Bucket:    "recipes",
		Endpoint:  endpoint,
		AccessKey: "test",
		SecretKey: "test",
	})
	require.NoError(t, err)
	return store
}

func TestNewS3Client_RequiresBucket(t *testing.T) {
	_, err := s3.NewS3Client(&config.ArchiveConfig{Region: "us-east-1"})
	assert.Error(t, err)
}

func TestUpload_PathStyle(t *testing.T) {
	srv, calls := fakeS3(t)
	store := newClient(t, srv.URL)

	payload := `{"@type":"Recipe"}`
	out, err := store.Upload(context.Background(), port.UploadInput{
		Key:         "imports/abc.json",
		Body:        strings.NewReader(payload),
		ContentType: "application/json",
		Size:        int64(len(payload)),
	})
	require.NoError(t, err)
	assert.Equal(t, "imports/abc.json", out.Key)
	assert.Contains(t, out.Location, "/recipes/imports/abc.json")

	got := calls()
	require.Len(t, got, 1)
	assert.Equal(t, http.MethodPut, got[0].method)
	assert.Equal(t, "/recipes/imports/abc.json", got[0].path)
	assert.Equal(t, "application/json", got[0].contentType)
	assert.Contains(t, got[0].body, payload)
}

func TestDelete(t *testing.T) {
	srv, calls := fakeS3(t)
	store := newClient(t, srv.URL)

	require.NoError(t, store.Delete(context.Background(), "imports/abc.json"))
	got := calls()
	require.Len(t, got, 1)
	assert.Equal(t, http.MethodDelete, got[0].method)
	assert.Equal(t, "/recipes/imports/abc.json", got[0].path)
}
