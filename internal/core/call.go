package core

import (
	"github.com/rs/zerolog/log"

	"github.com/mkraev/huddle/internal/domain"
)

// CallPhase is the implicit negotiation state of a room's call. It is
// bookkeeping for logs and tests only: the relay never gates a payload on
// it and never parses what it forwards.
type CallPhase int

const (
	CallIdle CallPhase = iota
	CallWaiting
	CallNegotiating
	CallConnected
)

func (p CallPhase) String() string {
	switch p {
	case CallWaiting:
		return "waiting"
	case CallNegotiating:
		return "negotiating"
	case CallConnected:
		return "connected"
	default:
		return "idle"
	}
}

// CallPhaseOf reports the room's current phase, CallIdle if the room does
// not exist.
func (m *Rooms) CallPhaseOf(roomID domain.RoomID) CallPhase {
	if rm, ok := m.rooms[roomID]; ok {
		return rm.call
	}
	return CallIdle
}

// noteSignal advances the phase as negotiation messages pass through: the
// first offer starts negotiating, an answer marks the call connected. ICE
// candidates trickle in any state and move nothing.
func (m *Rooms) noteSignal(roomID domain.RoomID, kind SignalKind) {
	rm, ok := m.rooms[roomID]
	if !ok {
		return
	}
	prev := rm.call
	switch kind {
	case SignalOffer:
		if rm.call == CallWaiting {
			rm.call = CallNegotiating
		}
	case SignalAnswer:
		if rm.call == CallNegotiating {
			rm.call = CallConnected
		}
	}
	if rm.call != prev {
		log.Info().Str("module", "core.call").Str("room", string(roomID)).Stringer("from", prev).Stringer("to", rm.call).Msg("call phase change")
	}
}

// noteLeave tears down an in-progress call when a participant goes away.
// The room falls back to waiting so a remaining or later peer can
// renegotiate from scratch.
func (m *Rooms) noteLeave(roomID domain.RoomID) {
	rm, ok := m.rooms[roomID]
	if !ok {
		return
	}
	if rm.call == CallNegotiating || rm.call == CallConnected {
		log.Info().Str("module", "core.call").Str("room", string(roomID)).Stringer("from", rm.call).Msg("call torn down")
		rm.call = CallWaiting
	}
}

// noteJoin flags the two-party convention being stretched: a third member
// joining a room with a call underway still receives broadcasts, which is
// almost never what the peers intended.
func (m *Rooms) noteJoin(roomID domain.RoomID) {
	rm, ok := m.rooms[roomID]
	if !ok {
		return
	}
	if len(rm.members) > 2 && rm.call != CallWaiting {
		log.Warn().Str("module", "core.call").Str("room", string(roomID)).Int("count", len(rm.members)).Msg("third member joined a room with an active call")
	}
}
