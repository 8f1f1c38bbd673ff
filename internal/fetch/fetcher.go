// Package fetch downloads the raw catalog dump over HTTP into the local
// dataset path the loader reads from. Downloads write to a temporary file
// and rename into place, so a partial transfer never clobbers a good copy.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/time/rate"

	apperrors "steamlens/internal/errors"
)

const (
	defaultMaxRetries = 3
	defaultBackoff    = 2 * time.Second
)

// Fetcher downloads the dataset dump to a local path.
type Fetcher struct {
	client     *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
	maxRetries int
	backoff    time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithClient replaces the HTTP client, mainly for tests.
func WithClient(client *http.Client) Option {
	return func(f *Fetcher) { f.client = client }
}

// WithRetries sets the retry count and the base backoff between attempts.
func WithRetries(n int, backoff time.Duration) Option {
	return func(f *Fetcher) {
		f.maxRetries = n
		f.backoff = backoff
	}
}

// WithLimiter replaces the request rate limiter.
func WithLimiter(l *rate.Limiter) Option {
	return func(f *Fetcher) { f.limiter = l }
}

// NewFetcher creates a fetcher with sane production defaults: one request
// per second burst two, three attempts with linear backoff.
func NewFetcher(logger *slog.Logger, opts ...Option) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	f := &Fetcher{
		client:     &http.Client{Timeout: 5 * time.Minute},
		limiter:    rate.NewLimiter(rate.Every(time.Second), 2),
		logger:     logger,
		maxRetries: defaultMaxRetries,
		backoff:    defaultBackoff,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Download fetches url into dest. The transfer goes through dest+".tmp" and
// renames on success. Retries cover transport errors and 5xx responses;
// 4xx responses fail immediately since retrying cannot help.
func (f *Fetcher) Download(ctx context.Context, url, dest string) error {
	if url == "" {
		return apperrors.NewValidationError("download URL is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return apperrors.NewStorageError("create dataset directory", err)
	}

	var lastErr error
	for attempt := 1; attempt <= f.maxRetries; attempt++ {
		if err := f.limiter.Wait(ctx); err != nil {
			return err
		}

		start := time.Now()
		size, err := f.downloadOnce(ctx, url, dest)
		if err == nil {
			f.logger.InfoContext(ctx, "dataset downloaded",
				slog.String("url", url),
				slog.String("dest", dest),
				slog.Int64("bytes", size),
				slog.Duration("elapsed", time.Since(start)))
			return nil
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !isRetryable(err) {
			return err
		}

		lastErr = err
		f.logger.WarnContext(ctx, "download attempt failed",
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()))

		if attempt < f.maxRetries {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(f.backoff * time.Duration(attempt)):
			}
		}
	}

	return apperrors.NewNetworkError(
		fmt.Sprintf("download failed after %d attempts", f.maxRetries), lastErr)
}

func (f *Fetcher) downloadOnce(ctx context.Context, url, dest string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, apperrors.NewValidationError(fmt.Sprintf("invalid download URL: %v", err))
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, &retryableError{apperrors.NewNetworkError("request failed", err)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= 500:
		return 0, &retryableError{apperrors.NewNetworkError(
			fmt.Sprintf("server returned status %d", resp.StatusCode), nil)}
	default:
		return 0, apperrors.NewNetworkError(
			fmt.Sprintf("server returned status %d", resp.StatusCode), nil)
	}

	tmp := dest + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return 0, apperrors.NewStorageError("create temp file", err)
	}

	size, err := io.Copy(out, resp.Body)
	closeErr := out.Close()
	if err != nil {
		os.Remove(tmp)
		return 0, &retryableError{apperrors.NewNetworkError("transfer interrupted", err)}
	}
	if closeErr != nil {
		os.Remove(tmp)
		return 0, apperrors.NewStorageError("close temp file", closeErr)
	}

	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return 0, apperrors.NewStorageError("move dataset into place", err)
	}
	return size, nil
}

// retryableError marks a failure worth another attempt.
type retryableError struct {
	err error
}

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

func isRetryable(err error) bool {
	var re *retryableError
	return errors.As(err, &re)
}
