package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/mkraev/huddle/internal/domain"
)

func (ctl *Controller) handleNewMessage(id domain.ConnID, c *Conn, data []byte) {
	type messagePayload struct {
		Type    string `json:"type"`
		Room    string `json:"room"`
		Message string `json:"message"`
	}
	var p messagePayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad new_message payload")
		ctl.sendError(c, "bad_payload")
		return
	}

	if !ctl.Hub.SendMessage(id, domain.RoomID(p.Room), p.Message) {
		return
	}

	// Ack lets the client echo "You: ..." locally without a round trip.
	ctl.sendJSON(c, map[string]any{"type": "sent"})
}

func (ctl *Controller) handleNickname(id domain.ConnID, c *Conn, data []byte) {
	type nicknamePayload struct {
		Type string `json:"type"`
		Name string `json:"name"`
	}
	var p nicknamePayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad nickname payload")
		ctl.sendError(c, "bad_payload")
		return
	}
	if p.Name == "" {
		ctl.sendError(c, "empty name")
		return
	}

	log.Info().Str("module", "signal").Str("conn", string(id)).Str("name", p.Name).Msg("nickname")
	ctl.Hub.SetName(id, p.Name)
}
