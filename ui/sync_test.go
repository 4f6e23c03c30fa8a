package ui

import (
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

func newScoreServer(t *testing.T) *httptest.Server {
	t.Helper()
	handler := scores.NewHandler(scores.NewMemoryStore(), scores.HandlerOptions{Logger: log.New(io.Discard)})
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestScoreSyncUploadThenFetch(t *testing.T) {
	server := newScoreServer(t)
	sync := NewScoreSync(scores.NewClient(server.URL, ""), true)

	uploaded, ok := sync.UploadScoreCmd(ScoreEntry{Name: "  Ada ", Score: 500, Level: 2, Lines: 12})().(scoreUploadedMsg)
	require.True(t, ok)
	require.NoError(t, uploaded.err)

	loaded, ok := sync.FetchScoresCmd()().(scoresLoadedMsg)
	require.True(t, ok)
	require.NoError(t, loaded.err)
	require.Len(t, loaded.scores, 1)
	assert.Equal(t, ScoreEntry{Name: "Ada", Score: 500, Level: 2, Lines: 12}, loaded.scores[0])
}

func TestScoreSyncRejectsInvalidLocally(t *testing.T) {
	sync := NewScoreSync(scores.NewClient("http://127.0.0.1:1", ""), true)
	msg := sync.UploadScoreCmd(ScoreEntry{Name: "Ada", Score: 10, Level: 0})().(scoreUploadedMsg)
	assert.ErrorIs(t, msg.err, scores.ErrInvalid)
}

func TestScoreSyncNilIsDisabled(t *testing.T) {
	var sync *ScoreSync
	assert.False(t, sync.Enabled())
	sync.SetEnabled(true)
	assert.False(t, sync.Enabled())

	msg := sync.FetchScoresCmd()().(scoresLoadedMsg)
	assert.NoError(t, msg.err)
	assert.Empty(t, msg.scores)
}

func TestNewScoreSyncFromEnv(t *testing.T) {
	assert.Nil(t, NewScoreSyncFromEnv(Env{SyncAllowed: true}, true))
	assert.Nil(t, NewScoreSyncFromEnv(Env{ScoreAPIURL: "http://x", SyncAllowed: false}, true))

	sync := NewScoreSyncFromEnv(Env{ScoreAPIURL: "http://x", SyncAllowed: true}, false)
	require.NotNil(t, sync)
	assert.False(t, sync.Enabled())
}

func TestModelUploadFailureOffersRetry(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(failing.Close)

	m := newTestModel(t, nil, NewScoreSync(scores.NewClient(failing.URL, ""), true))
	require.True(t, m.sync.Enabled())
	m.screen = screenScores

	entry := ScoreEntry{Name: "Ada", Score: 100, Level: 1, Lines: 1}
	m, cmd := send(m, scoreUploadedMsg{entry: entry, err: errors.New("connection refused")})
	assert.Nil(t, cmd)
	assert.Equal(t, warnSubmitFailed, m.syncWarning)
	require.NotNil(t, m.pending)
	assert.Contains(t, m.View(), warnSubmitFailed)

	m, cmd = send(m, keyPress("r"))
	require.NotNil(t, cmd)
	assert.True(t, m.syncLoading)

	m, _ = send(m, cmd())
	assert.Equal(t, warnSubmitFailed, m.syncWarning)
	assert.False(t, m.syncLoading)
}

func TestModelUploadSuccessRefreshes(t *testing.T) {
	server := newScoreServer(t)
	m := newTestModel(t, nil, NewScoreSync(scores.NewClient(server.URL, ""), true))
	m.screen = screenScores
	entry := ScoreEntry{Name: "Ada", Score: 300, Level: 1, Lines: 3}

	m.pending = &entry
	m, cmd := send(m, m.sync.UploadScoreCmd(entry)())
	require.NotNil(t, cmd)
	assert.Nil(t, m.pending)

	m, _ = send(m, cmd())
	require.Len(t, m.scores, 1)
	assert.Equal(t, "Ada", m.scores[0].Name)
	assert.Empty(t, m.syncWarning)
}

func TestModelFetchFailureShowsOffline(t *testing.T) {
	storage := NewMemoryStorage(DefaultConfig())
	require.NoError(t, storage.SaveScores([]ScoreEntry{{Name: "Local", Score: 50}}))
	m := newTestModel(t, storage, NewScoreSync(scores.NewClient("http://127.0.0.1:1", ""), true))
	m.screen = screenScores

	m, _ = send(m, scoresLoadedMsg{err: errors.New("dial tcp: refused")})
	assert.Equal(t, warnOffline, m.syncWarning)
	require.Len(t, m.scores, 1)
	assert.Equal(t, "Local", m.scores[0].Name)
}
