// Package core is the connection/room relay: it tracks which connections
// belong to which rooms, computes presence notifications and relays chat
// and negotiation payloads. It knows nothing about websockets; the
// transport hands it typed events and supplies a Sender per connection.
package core

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/mkraev/huddle/internal/domain"
)

// Hub owns the registry and the room index behind a single mutex. Every
// inbound event mutates the index and resolves its outbound deliveries
// under the lock, then the lock is released and the frames go out through
// each target's non-blocking Sender. A slow or vanished receiver is
// skipped, never an error to anyone else.
type Hub struct {
	mu       sync.Mutex
	registry *Registry
	rooms    *Rooms
}

func NewHub() *Hub {
	return &Hub{
		registry: NewRegistry(),
		rooms:    NewRooms(),
	}
}

// Connect registers a new transport connection. Called exactly once per
// connection, before any other event for it.
func (h *Hub) Connect(id domain.ConnID, s Sender) {
	h.mu.Lock()
	h.registry.Register(id, s)
	h.mu.Unlock()
}

// Disconnect vacates every room the connection was in, broadcasting a bye
// with the post-leave count to each room that still has members, then a
// single global room listing update. Called exactly once per disconnect.
func (h *Hub) Disconnect(id domain.ConnID) {
	h.mu.Lock()
	if !h.registry.Has(id) {
		h.mu.Unlock()
		return
	}
	name := h.registry.Name(id)

	var deliveries []Delivery
	for _, roomID := range h.registry.Unregister(id) {
		h.rooms.noteLeave(roomID)
		count, removed := h.rooms.Leave(roomID, id)
		if removed {
			continue
		}
		remaining := h.registry.Senders(h.rooms.MembersOf(roomID))
		deliveries = append(deliveries, byeDelivery(name, count, remaining))
	}
	deliveries = append(deliveries, roomChangeDelivery(h.publicRoomsLocked(), h.registry.AllSenders()))
	h.mu.Unlock()

	dispatch(deliveries)
}

// SetName updates the connection's display name. Unknown connections and
// invalid names are logged no-ops.
func (h *Hub) SetName(id domain.ConnID, name string) {
	h.mu.Lock()
	h.registry.SetName(id, name)
	h.mu.Unlock()
}

// EnterRoom sets the display name, joins the room and notifies the other
// members plus the global listing. The returned count is the occupancy the
// join produced; the transport acks the joiner with it only after this
// returns, i.e. after the broadcasts were dispatched. Re-joining a room the
// connection is already in changes nothing and emits nothing.
func (h *Hub) EnterRoom(id domain.ConnID, roomID domain.RoomID, name string) (count int, ok bool) {
	h.mu.Lock()
	if !h.registry.Has(id) {
		h.mu.Unlock()
		log.Warn().Str("module", "core.hub").Str("conn", string(id)).Msg("enter_room from unknown connection")
		return 0, false
	}
	if name != "" {
		h.registry.SetName(id, name)
	}

	count, already := h.rooms.Join(roomID, id)
	if already {
		h.mu.Unlock()
		return count, true
	}
	h.registry.addMembership(id, roomID)
	h.rooms.noteJoin(roomID)

	others := h.registry.Senders(h.rooms.othersOf(roomID, id))
	deliveries := []Delivery{
		welcomeDelivery(h.registry.Name(id), count, others),
		roomChangeDelivery(h.publicRoomsLocked(), h.registry.AllSenders()),
	}
	h.mu.Unlock()

	dispatch(deliveries)
	return count, true
}

// SendMessage relays the text and the sender's current display name to
// every member of the room except the sender. There is no membership
// check: room naming discipline belongs to the caller. Returns true once
// dispatched so the transport can ack; the ack is owed even when the room
// has no other members.
func (h *Hub) SendMessage(id domain.ConnID, roomID domain.RoomID, text string) bool {
	h.mu.Lock()
	if !h.registry.Has(id) {
		h.mu.Unlock()
		return false
	}
	name := h.registry.Name(id)
	others := h.registry.Senders(h.rooms.othersOf(roomID, id))
	h.mu.Unlock()

	dispatch([]Delivery{messageDelivery(text, name, others)})
	return true
}

// RelaySignal forwards an opaque offer/answer/ICE payload verbatim to the
// other members of the room. The payload body is never inspected.
func (h *Hub) RelaySignal(id domain.ConnID, roomID domain.RoomID, kind SignalKind, payload json.RawMessage) {
	if !kind.Valid() {
		log.Warn().Str("module", "core.hub").Str("kind", string(kind)).Msg("dropping unknown signal kind")
		return
	}
	h.mu.Lock()
	if !h.registry.Has(id) {
		h.mu.Unlock()
		return
	}
	h.rooms.noteSignal(roomID, kind)
	others := h.registry.Senders(h.rooms.othersOf(roomID, id))
	h.mu.Unlock()

	dispatch([]Delivery{{
		Targets: others,
		Event:   SignalEvent{Type: string(kind), Payload: payload},
	}})
}

// PublicRooms snapshots the listable rooms, for the room_change event and
// the REST listing.
func (h *Hub) PublicRooms() []domain.RoomID {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.publicRoomsLocked()
}

// RoomList returns the public rooms with their occupancy, for /api/rooms.
func (h *Hub) RoomList() []RoomInfo {
	h.mu.Lock()
	defer h.mu.Unlock()
	ids := h.publicRoomsLocked()
	out := make([]RoomInfo, 0, len(ids))
	for _, rid := range ids {
		out = append(out, RoomInfo{ID: rid, Count: h.rooms.Count(rid)})
	}
	return out
}

func (h *Hub) publicRoomsLocked() []domain.RoomID {
	return h.rooms.PublicRoomIDs(func(rid domain.RoomID) bool {
		return h.registry.Has(domain.ConnID(rid))
	})
}

// dispatch marshals each event once and fans it out. Runs with no locks
// held; failures are per-receiver and silent.
func dispatch(deliveries []Delivery) {
	for _, d := range deliveries {
		if len(d.Targets) == 0 {
			continue
		}
		b, err := json.Marshal(d.Event)
		if err != nil {
			log.Error().Err(err).Str("module", "core.hub").Msg("marshal outbound event")
			continue
		}
		sent := 0
		for _, s := range d.Targets {
			if err := s.TrySend(Frame(b)); err != nil {
				continue
			}
			sent++
		}
		log.Debug().Str("module", "core.hub").Int("sent", sent).Int("targets", len(d.Targets)).Msg("dispatched")
	}
}
