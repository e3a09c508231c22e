package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/mkraev/huddle/internal/core"
	"github.com/mkraev/huddle/internal/domain"
)

// handleSignal relays offer/answer/ice envelopes. Only the room is parsed
// out; the payload travels as raw bytes, the server never looks at SDP or
// candidate bodies.
func (ctl *Controller) handleSignal(id domain.ConnID, c *Conn, kind core.SignalKind, data []byte) {
	type signalPayload struct {
		Type    string          `json:"type"`
		Room    string          `json:"room"`
		Payload json.RawMessage `json:"payload"`
	}
	var p signalPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad signal payload")
		ctl.sendError(c, "bad_payload")
		return
	}
	if p.Room == "" {
		ctl.sendError(c, "empty room")
		return
	}

	log.Debug().Str("module", "signal").Str("conn", string(id)).Str("room", p.Room).Str("kind", string(kind)).Msg("relay signal")
	ctl.Hub.RelaySignal(id, domain.RoomID(p.Room), kind, p.Payload)
}
