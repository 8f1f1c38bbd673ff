package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	apperrors "steamlens/internal/errors"
)

func testFetcher(t *testing.T) *Fetcher {
	t.Helper()
	return NewFetcher(nil,
		WithRetries(3, time.Millisecond),
		WithLimiter(rate.NewLimiter(rate.Inf, 1)))
}

func TestDownloadSuccess(t *testing.T) {
	const payload = `{"10": {"name": "Test Game"}}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "data", "games.json")
	err := testFetcher(t).Download(context.Background(), server.URL, dest)
	require.NoError(t, err)

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, payload, string(got))

	// No temp file left behind.
	_, err = os.Stat(dest + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestDownloadRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "games.json")
	err := testFetcher(t).Download(context.Background(), server.URL, dest)
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestDownloadExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "games.json")
	err := testFetcher(t).Download(context.Background(), server.URL, dest)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNetwork))
	assert.Equal(t, int32(3), calls.Load())

	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr))
}

func TestDownloadClientErrorDoesNotRetry(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	err := testFetcher(t).Download(context.Background(), server.URL, filepath.Join(t.TempDir(), "games.json"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNetwork))
	assert.Equal(t, int32(1), calls.Load())
}

func TestDownloadEmptyURL(t *testing.T) {
	err := testFetcher(t).Download(context.Background(), "", filepath.Join(t.TempDir(), "games.json"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
}

func TestDownloadHonorsContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := testFetcher(t).Download(ctx, server.URL, filepath.Join(t.TempDir(), "games.json"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestDownloadOverwritesExistingFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("new contents"))
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "games.json")
	require.NoError(t, os.WriteFile(dest, []byte("old contents"), 0644))

	err := testFetcher(t).Download(context.Background(), server.URL, dest)
	require.NoError(t, err)

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "new contents", string(got))
}
