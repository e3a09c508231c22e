package core

import (
	"github.com/rs/zerolog/log"

	"github.com/mkraev/huddle/internal/domain"
)

type room struct {
	members map[domain.ConnID]struct{}
	call    CallPhase
}

// Rooms maps room ids to member sets. A room is created on first join and
// removed the instant its last member leaves; the index never holds an
// empty room. Like Registry, access is serialized by the owning Hub.
type Rooms struct {
	rooms map[domain.RoomID]*room
	order []domain.RoomID // first-join order, drives the public listing
}

func NewRooms() *Rooms {
	return &Rooms{rooms: make(map[domain.RoomID]*room)}
}

// Join adds the connection to the room, creating it if absent. Returns the
// resulting occupancy and whether the connection was already a member
// (in which case nothing changed).
func (m *Rooms) Join(roomID domain.RoomID, id domain.ConnID) (count int, already bool) {
	rm, ok := m.rooms[roomID]
	if !ok {
		rm = &room{members: make(map[domain.ConnID]struct{}), call: CallWaiting}
		m.rooms[roomID] = rm
		m.order = append(m.order, roomID)
	}
	if _, member := rm.members[id]; member {
		return len(rm.members), true
	}
	rm.members[id] = struct{}{}
	log.Info().Str("module", "core.rooms").Str("room", string(roomID)).Str("conn", string(id)).Int("count", len(rm.members)).Msg("member joined")
	return len(rm.members), false
}

// Leave removes the membership. removed reports that the room emptied and
// was dropped from the index; count is only meaningful when removed is
// false, so callers never broadcast an occupancy of zero.
func (m *Rooms) Leave(roomID domain.RoomID, id domain.ConnID) (count int, removed bool) {
	rm, ok := m.rooms[roomID]
	if !ok {
		return 0, false
	}
	delete(rm.members, id)
	if len(rm.members) == 0 {
		m.drop(roomID)
		log.Info().Str("module", "core.rooms").Str("room", string(roomID)).Msg("room emptied, removed")
		return 0, true
	}
	log.Info().Str("module", "core.rooms").Str("room", string(roomID)).Str("conn", string(id)).Int("count", len(rm.members)).Msg("member left")
	return len(rm.members), false
}

func (m *Rooms) drop(roomID domain.RoomID) {
	delete(m.rooms, roomID)
	for i, rid := range m.order {
		if rid == roomID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

func (m *Rooms) MembersOf(roomID domain.RoomID) []domain.ConnID {
	rm, ok := m.rooms[roomID]
	if !ok {
		return nil
	}
	out := make([]domain.ConnID, 0, len(rm.members))
	for id := range rm.members {
		out = append(out, id)
	}
	return out
}

// othersOf is MembersOf minus one connection, the relay's usual target set.
func (m *Rooms) othersOf(roomID domain.RoomID, except domain.ConnID) []domain.ConnID {
	rm, ok := m.rooms[roomID]
	if !ok {
		return nil
	}
	out := make([]domain.ConnID, 0, len(rm.members))
	for id := range rm.members {
		if id == except {
			continue
		}
		out = append(out, id)
	}
	return out
}

func (m *Rooms) Count(roomID domain.RoomID) int {
	if rm, ok := m.rooms[roomID]; ok {
		return len(rm.members)
	}
	return 0
}

// PublicRoomIDs snapshots the listable rooms in first-join order. A room
// whose id doubles as a live connection id is transport bookkeeping, not a
// user room, and is filtered out; isConn is the registry membership check.
func (m *Rooms) PublicRoomIDs(isConn func(domain.RoomID) bool) []domain.RoomID {
	out := make([]domain.RoomID, 0, len(m.order))
	for _, rid := range m.order {
		if isConn(rid) {
			continue
		}
		out = append(out, rid)
	}
	return out
}
