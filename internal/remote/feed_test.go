package remote

import (
	"context"
	"net"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gioui.org/f32"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mj1618/gergui/internal/interaction"
	"github.com/mj1618/gergui/internal/layout"
	"github.com/mj1618/gergui/internal/spawn"
)

const menu = `--button--
name: play
size: 200;60
dock_with: screen.center_middle <-> this.center_middle
--end--
`

func newFeed(t *testing.T, opts Options) *Feed {
	t.Helper()
	cs, err := layout.Parse(strings.NewReader(menu))
	require.NoError(t, err)
	scene, err := spawn.Build(cs, f32.Pt(800, 600), nil)
	require.NoError(t, err)
	return NewFeed(scene, opts)
}

func newFeedServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(newFeed(t, Options{Cooldown: 0.5}).Routes())
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, f Frame) Reply {
	t.Helper()
	require.NoError(t, conn.WriteJSON(f))
	var r Reply
	require.NoError(t, conn.ReadJSON(&r))
	return r
}

func TestFeed_ClickCycle(t *testing.T) {
	conn := dial(t, newFeedServer(t), "")

	r := send(t, conn, Frame{X: 0, Y: 0})
	assert.Equal(t, uint64(1), r.Tick)
	require.Len(t, r.Events, 1)
	assert.Equal(t, interaction.Hover, r.Events[0].To)
	require.Len(t, r.Widgets, 1)
	assert.Equal(t, interaction.Hover, r.Widgets[0].State)

	r = send(t, conn, Frame{X: 0, Y: 0, Pressed: true})
	require.Len(t, r.Events, 1)
	assert.Equal(t, interaction.Active, r.Events[0].To)
	assert.Equal(t, float32(0.5), r.Widgets[0].Cooldown)

	// holding the button is not a second press
	r = send(t, conn, Frame{X: 0, Y: 0, Pressed: true, Elapsed: 0.6})
	require.Len(t, r.Events, 1)
	assert.Equal(t, "cooldown", r.Events[0].Cause)
	assert.Equal(t, interaction.Normal, r.Widgets[0].State)

	r = send(t, conn, Frame{X: 0, Y: 0, Pressed: true})
	require.Len(t, r.Events, 1)
	assert.Equal(t, interaction.Hover, r.Events[0].To)
	assert.Equal(t, uint64(4), r.Tick)
}

func TestFeed_Commands(t *testing.T) {
	conn := dial(t, newFeedServer(t), "")

	r := send(t, conn, Frame{Cmd: "disable", Name: "play"})
	assert.Empty(t, r.Error)
	assert.Equal(t, uint64(0), r.Tick)
	require.Len(t, r.Events, 1)
	assert.Equal(t, interaction.Disabled, r.Events[0].To)

	r = send(t, conn, Frame{X: 0, Y: 0, Pressed: true})
	assert.Empty(t, r.Events)
	assert.Equal(t, interaction.Disabled, r.Widgets[0].State)

	r = send(t, conn, Frame{Cmd: "enable", Name: "ghost"})
	assert.Contains(t, r.Error, "unknown widget")

	r = send(t, conn, Frame{Cmd: "explode"})
	assert.Contains(t, r.Error, "unknown cmd")
}

func TestFeed_ConnectionsAreIsolated(t *testing.T) {
	srv := newFeedServer(t)
	a := dial(t, srv, "")
	b := dial(t, srv, "")

	send(t, a, Frame{X: 0, Y: 0})
	r := send(t, b, Frame{X: 500, Y: 500})
	assert.Equal(t, interaction.Normal, r.Widgets[0].State)
	assert.Equal(t, uint64(1), r.Tick)
}

func TestFeed_Diff(t *testing.T) {
	conn := dial(t, newFeedServer(t), "?diff=1")

	r := send(t, conn, Frame{X: 0, Y: 0})
	require.Len(t, r.Changes, 1)
	assert.Equal(t, "play", r.Changes[0].Name)
	assert.Equal(t, [2]string{"normal", "hover"}, r.Changes[0].Changes["s"])

	r = send(t, conn, Frame{X: 0, Y: 0})
	assert.Empty(t, r.Changes)
}

func TestFeed_DropsSilentClient(t *testing.T) {
	feed := newFeed(t, Options{Cooldown: 0.5, PongWait: 100 * time.Millisecond})
	srv := httptest.NewServer(feed.Routes())
	t.Cleanup(srv.Close)

	// never reads, so pings go unanswered
	dial(t, srv, "")
	assert.Eventually(t, func() bool { return feed.Connections() == 1 }, time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return feed.Connections() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestFeed_ActiveClientStaysConnected(t *testing.T) {
	feed := newFeed(t, Options{Cooldown: 0.5, PongWait: 100 * time.Millisecond})
	srv := httptest.NewServer(feed.Routes())
	t.Cleanup(srv.Close)

	conn := dial(t, srv, "")
	for i := 0; i < 8; i++ {
		send(t, conn, Frame{X: 500, Y: 500})
		time.Sleep(40 * time.Millisecond)
	}
	assert.Equal(t, 1, feed.Connections())
}

func TestFeed_ServeClosesConnectionsOnCancel(t *testing.T) {
	feed := newFeed(t, Options{Cooldown: 0.5})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errc := make(chan error, 1)
	go func() { errc <- feed.Serve(ctx, ln) }()

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+ln.Addr().String()+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()
	send(t, conn, Frame{X: 0, Y: 0})

	cancel()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
	assert.Eventually(t, func() bool { return feed.Connections() == 0 }, time.Second, 10*time.Millisecond)
}
