// Package remote serves a websocket feed that drives the interaction state
// machine from runtime input sent by a client.
package remote

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"gioui.org/f32"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/mj1618/gergui/internal/interaction"
	"github.com/mj1618/gergui/internal/model"
	"github.com/mj1618/gergui/internal/platform"
	"github.com/mj1618/gergui/internal/spawn"
)

var log = logrus.WithField("component", "remote")

// DefaultPongWait is how long a connection may stay silent before it is dropped.
const DefaultPongWait = 60 * time.Second

// Frame is one client message. A frame with Cmd set is a command
// ("disable" or "enable" the widget Name); otherwise it is runtime input.
// Pressed is the button level; the press edge is derived per connection.
type Frame struct {
	X       float32 `json:"x"`
	Y       float32 `json:"y"`
	Pressed bool    `json:"pressed"`
	Elapsed float32 `json:"elapsed"`
	Cmd     string  `json:"cmd,omitempty"`
	Name    string  `json:"name,omitempty"`
}

// Reply answers every frame.
type Reply struct {
	Tick    uint64                    `json:"tick"`
	Events  []interaction.Event       `json:"events"`
	Widgets []interaction.WidgetState `json:"widgets"`
	Changes []model.UIChange          `json:"changes,omitempty"`
	Error   string                    `json:"error,omitempty"`
}

// Options configures a Feed.
type Options struct {
	Cooldown      float32
	AllowedOrigin string // "*" or empty accepts any origin
	Audio         platform.AudioPlayer
	PongWait      time.Duration // <= 0 means DefaultPongWait; pings go out at 9/10 of it
}

// Feed upgrades connections on /ws. Each connection owns its own world built
// from the same scene.
type Feed struct {
	scene    *spawn.Scene
	opts     Options
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func NewFeed(scene *spawn.Scene, opts Options) *Feed {
	if opts.PongWait <= 0 {
		opts.PongWait = DefaultPongWait
	}
	return &Feed{
		scene: scene,
		opts:  opts,
		conns: make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return opts.AllowedOrigin == "" || opts.AllowedOrigin == "*" || origin == opts.AllowedOrigin
			},
		},
	}
}

// Routes returns the feed's HTTP handler.
func (f *Feed) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", f.Handler)
	return mux
}

// ListenAndServe serves the feed on addr until ctx is done.
func (f *Feed) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return f.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done. Shutdown stops the
// listener and closes every live websocket, which the HTTP server no longer
// tracks once upgraded.
func (f *Feed) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: f.Routes(), ReadHeaderTimeout: 10 * time.Second}
	srv.RegisterOnShutdown(f.closeAll)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.WithField("addr", ln.Addr().String()).Info("feed listening")
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Connections returns the number of open websocket connections.
func (f *Feed) Connections() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.conns)
}

func (f *Feed) track(conn *websocket.Conn) {
	f.mu.Lock()
	f.conns[conn] = struct{}{}
	f.mu.Unlock()
}

func (f *Feed) untrack(conn *websocket.Conn) {
	f.mu.Lock()
	delete(f.conns, conn)
	f.mu.Unlock()
}

func (f *Feed) closeAll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	for conn := range f.conns {
		conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		conn.Close()
	}
}

// Handler upgrades a single connection. A `diff=1` query parameter adds the
// element changes since the previous frame to each reply.
func (f *Feed) Handler(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()
	f.track(conn)
	defer f.untrack(conn)

	sys := interaction.NewSystem(f.opts.Audio, f.opts.Cooldown)
	if err := f.scene.Populate(sys); err != nil {
		log.WithError(err).Error("populate world")
		return
	}
	sess := &session{
		scene: f.scene,
		sys:   sys,
		diff:  r.URL.Query().Get("diff") == "1",
	}
	if sess.diff {
		sess.prev = f.scene.Elements(sys)
	}

	clog := log.WithField("remote", r.RemoteAddr)
	clog.Info("client connected")
	defer clog.Info("client disconnected")

	// Any message or pong proves the peer is alive and extends the deadline.
	alive := func() error { return conn.SetReadDeadline(time.Now().Add(f.opts.PongWait)) }
	alive()
	conn.SetPongHandler(func(string) error { return alive() })

	done := make(chan struct{})
	defer close(done)
	go sendPings(conn, f.opts.PongWait*9/10, done)

	for {
		var frame Frame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				clog.WithError(err).Warn("read failed")
			}
			return
		}
		alive()
		if err := conn.WriteJSON(sess.apply(frame)); err != nil {
			clog.WithError(err).Warn("write failed")
			return
		}
	}
}

func sendPings(conn *websocket.Conn, interval time.Duration, done <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			// WriteControl may run concurrently with WriteJSON.
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				return
			}
		}
	}
}

// session is the per-connection state.
type session struct {
	scene   *spawn.Scene
	sys     *interaction.System
	tick    uint64
	pressed bool
	diff    bool
	prev    []model.Element
}

func (s *session) apply(frame Frame) Reply {
	var (
		events []interaction.Event
		err    error
	)
	switch frame.Cmd {
	case "":
		s.tick++
		events = s.sys.Tick(platform.InputFrame{
			Pointer:     f32.Pt(frame.X, frame.Y),
			JustPressed: frame.Pressed && !s.pressed,
			Elapsed:     frame.Elapsed,
		})
		s.pressed = frame.Pressed
	case "disable", "enable":
		events, err = s.sys.SetDisabled(frame.Name, frame.Cmd == "disable")
	default:
		err = errors.New("unknown cmd " + frame.Cmd + " (expected disable or enable)")
	}

	reply := Reply{Tick: s.tick, Events: events, Widgets: s.sys.Snapshot()}
	if reply.Events == nil {
		reply.Events = []interaction.Event{}
	}
	if err != nil {
		reply.Error = err.Error()
	}
	if s.diff {
		curr := s.scene.Elements(s.sys)
		reply.Changes = model.DiffElements(s.prev, curr)
		s.prev = curr
	}
	return reply
}
