package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/levels"
	"github.com/vovakirdan/tui-maze/internal/registry"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

func init() {
	registry.Register("webquick", "Web Quick", func() (*levels.Catalog, error) {
		return levels.NewCatalog("webquick", "Web Quick", []levels.Level{{
			ID:          "one",
			PlayerStart: core.Pt(50, 50),
			Goal:        core.Pt(80, 50),
		}}), nil
	})
}

func startServer(t *testing.T, store storage.Store) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(NewServer(Config{Pack: "classic"}, store, nil).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func dial(t *testing.T, ts *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, msgType string, payload any) {
	t.Helper()
	msg := Message{Type: msgType}
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		msg.Data = data
	}
	require.NoError(t, conn.WriteJSON(msg))
}

// readUntil reads frames until one of the given type arrives.
func readUntil(t *testing.T, conn *websocket.Conn, msgType string, out any) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	for {
		var msg Message
		require.NoError(t, conn.ReadJSON(&msg), "waiting for %s", msgType)
		if msg.Type != msgType {
			continue
		}
		if out != nil {
			require.NoError(t, json.Unmarshal(msg.Data, out))
		}
		return
	}
}

func TestHealth(t *testing.T) {
	ts := startServer(t, nil)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 0, body["clients"])
}

func TestIndexPage(t *testing.T) {
	ts := startServer(t, nil)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "<title>Maze</title>")
}

func TestUnknownPack(t *testing.T) {
	ts := startServer(t, nil)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?pack=nope"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPlayOverWebSocket(t *testing.T) {
	ts := startServer(t, nil)
	conn := dial(t, ts, "")

	var welcome WelcomeMessage
	readUntil(t, conn, TypeWelcome, &welcome)
	assert.Equal(t, "classic", welcome.Pack)
	assert.Equal(t, 3, welcome.Levels)
	assert.Equal(t, 800.0, welcome.Width)

	send(t, conn, TypeResize, ResizeMessage{Width: 800, Height: 600})
	send(t, conn, TypeStart, nil)

	var scale ScaleMessage
	readUntil(t, conn, TypeSpriteScale, &scale)
	assert.Equal(t, 1.0, scale.Scale)

	var obstacle ObstacleMessage
	readUntil(t, conn, TypeObstacleAdd, &obstacle)
	assert.Equal(t, ObstacleMessage{ID: 1, X: 200, Y: 100, W: 400, H: 30}, obstacle)

	send(t, conn, TypeKey, KeyMessage{Direction: "ArrowRight"})
	var pos PointMessage
	readUntil(t, conn, TypePlayer, &pos)
	assert.Equal(t, PointMessage{X: 60, Y: 50}, pos)
}

func TestBadFrames(t *testing.T) {
	ts := startServer(t, nil)
	conn := dial(t, ts, "")
	readUntil(t, conn, TypeWelcome, nil)

	send(t, conn, "jump", nil)
	var e ErrorMessage
	readUntil(t, conn, TypeError, &e)
	assert.Contains(t, e.Message, "unknown message type")

	send(t, conn, TypeKey, KeyMessage{Direction: "sideways"})
	readUntil(t, conn, TypeError, &e)
	assert.Contains(t, e.Message, "sideways")
}

func TestFinishedRunIsSaved(t *testing.T) {
	store, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	defer store.Close()

	ts := startServer(t, store)
	conn := dial(t, ts, "?pack=webquick&player=carol")
	readUntil(t, conn, TypeWelcome, nil)

	send(t, conn, TypeResize, ResizeMessage{Width: 800, Height: 600})
	send(t, conn, TypeStart, nil)
	send(t, conn, TypeKey, KeyMessage{Direction: "right"})

	var stats StatsMessage
	readUntil(t, conn, TypeLevelStats, &stats)
	assert.Equal(t, 1000, stats.Score)

	send(t, conn, TypeNext, nil)
	var done CompleteMessage
	readUntil(t, conn, TypeGameComplete, &done)
	assert.Equal(t, 1000, done.Score)

	assert.Eventually(t, func() bool {
		runs, err := store.TopRuns(context.Background(), "webquick", 10)
		return err == nil && len(runs) == 1 && runs[0].Player == "carol"
	}, 3*time.Second, 20*time.Millisecond)
}
