package scores_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrielsants/react-tetris/scores"
)

func newTestServer(t *testing.T, opts scores.HandlerOptions) *httptest.Server {
	t.Helper()
	opts.Logger = log.New(io.Discard)
	srv := httptest.NewServer(scores.NewHandler(scores.NewMemoryStore(), opts))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientRoundTrip(t *testing.T) {
	srv := newTestServer(t, scores.HandlerOptions{APIKey: "k"})
	client := scores.NewClient(srv.URL+"/", "k")
	ctx := context.Background()

	rec, err := client.Submit(ctx, scores.NewSubmission("Ada", 1200, 3, 24))
	require.NoError(t, err)
	assert.Equal(t, int64(1), rec.ID)
	_, err = client.Submit(ctx, scores.NewSubmission("Bea", 3400, 5, 44))
	require.NoError(t, err)

	records, err := client.Top(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Bea", records[0].PlayerName)
	assert.Equal(t, "Ada", records[1].PlayerName)

	records, err = client.Top(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestClientStatusError(t *testing.T) {
	srv := newTestServer(t, scores.HandlerOptions{})
	client := scores.NewClient(srv.URL, "")

	_, err := client.Submit(context.Background(), scores.NewSubmission("A", -5, 1, 0))
	require.Error(t, err)
	var statusErr *scores.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadRequest, statusErr.Code)
	assert.Equal(t, "Invalid score data", statusErr.Message)
}

func TestClientUnauthorized(t *testing.T) {
	srv := newTestServer(t, scores.HandlerOptions{APIKey: "k"})
	client := scores.NewClient(srv.URL, "")

	_, err := client.Submit(context.Background(), scores.NewSubmission("A", 5, 1, 0))
	var statusErr *scores.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnauthorized, statusErr.Code)
}

func TestClientNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := scores.NewClient(url, "").Top(context.Background(), 10)
	assert.Error(t, err)
}
