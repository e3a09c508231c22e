// Package signal is the websocket transport adapter: it upgrades
// connections, frames JSON envelopes and translates them into core events.
package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/mkraev/huddle/internal/config"
	"github.com/mkraev/huddle/internal/core"
	"github.com/mkraev/huddle/internal/domain"
)

var (
	ErrBackpressure = errors.New("backpressure")
	ErrConnClosed   = errors.New("connection closed")
)

type Controller struct {
	Hub *core.Hub
	Cfg *config.Config
}

func NewController(hub *core.Hub, cfg *config.Config) *Controller {
	return &Controller{Hub: hub, Cfg: cfg}
}

// Conn wraps one websocket with a buffered outbound queue. TrySend never
// blocks: when the queue is full the frame is dropped and the hub moves on.
type Conn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *Conn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrConnClosed
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *Conn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWS upgrades the request and registers the connection with the hub.
// The connection id is fresh per socket; the client token cookie only ties
// sockets of one browser together in the logs.
func (ctl *Controller) HandleWS(ctx context.Context, c *gin.Context) {
	id := domain.ConnID(uuid.NewString())
	log.Info().Str("module", "signal").Str("conn", string(id)).Str("client_token", c.GetString("client_token")).Msg("new WS connection")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}

	conn := &Conn{
		conn: ws,
		send: make(chan core.Frame, 32),
	}

	ctl.Hub.Connect(id, conn)
	ctx, cancel := context.WithCancel(ctx)

	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, cancel, id, conn)
}
