package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/mkraev/huddle/internal/domain"
)

func (ctl *Controller) handleEnterRoom(id domain.ConnID, c *Conn, data []byte) {
	type enterPayload struct {
		Type string `json:"type"`
		Room string `json:"room"`
		Name string `json:"name,omitempty"`
	}
	var p enterPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad enter_room payload")
		ctl.sendError(c, "bad_payload")
		return
	}
	if p.Room == "" {
		ctl.sendError(c, "empty room")
		return
	}

	log.Info().Str("module", "signal").Str("conn", string(id)).Str("room", p.Room).Msg("enter_room")
	count, ok := ctl.Hub.EnterRoom(id, domain.RoomID(p.Room), p.Name)
	if !ok {
		return
	}

	// The ack doubles as the welcome for the joiner itself: the dispatch to
	// the other members happened before EnterRoom returned.
	resp := struct {
		Type  string `json:"type"`
		Room  string `json:"room"`
		Count int    `json:"count"`
	}{
		Type:  "entered",
		Room:  p.Room,
		Count: count,
	}
	ctl.sendJSON(c, resp)
}
