package core

import (
	"github.com/rs/zerolog/log"

	"github.com/mkraev/huddle/internal/domain"
)

type connEntry struct {
	client *domain.Client
	sender Sender
	rooms  map[domain.RoomID]struct{}
}

// Registry tracks every live connection, its display name and its room
// memberships. It is plain data: the owning Hub serializes all access.
type Registry struct {
	conns map[domain.ConnID]*connEntry
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[domain.ConnID]*connEntry)}
}

func (r *Registry) Register(id domain.ConnID, s Sender) {
	r.conns[id] = &connEntry{
		client: domain.NewClient(id),
		sender: s,
		rooms:  make(map[domain.RoomID]struct{}),
	}
	log.Info().Str("module", "core.registry").Str("conn", string(id)).Msg("registered connection")
}

// SetName is a silent no-op for unknown connections: the event raced a
// just-processed disconnect, not a bug.
func (r *Registry) SetName(id domain.ConnID, name string) {
	e, ok := r.conns[id]
	if !ok {
		return
	}
	if err := e.client.SetName(name); err != nil {
		log.Warn().Err(err).Str("module", "core.registry").Str("conn", string(id)).Msg("rejected display name")
		return
	}
	log.Info().Str("module", "core.registry").Str("conn", string(id)).Str("name", name).Msg("set display name")
}

func (r *Registry) Name(id domain.ConnID) string {
	if e, ok := r.conns[id]; ok {
		return e.client.Name
	}
	return ""
}

func (r *Registry) Has(id domain.ConnID) bool {
	_, ok := r.conns[id]
	return ok
}

func (r *Registry) Sender(id domain.ConnID) (Sender, bool) {
	if e, ok := r.conns[id]; ok {
		return e.sender, true
	}
	return nil, false
}

// Senders resolves a set of connection ids to their transport endpoints,
// skipping ids that are gone.
func (r *Registry) Senders(ids []domain.ConnID) []Sender {
	out := make([]Sender, 0, len(ids))
	for _, id := range ids {
		if e, ok := r.conns[id]; ok {
			out = append(out, e.sender)
		}
	}
	return out
}

// AllSenders returns the endpoints of every registered connection, for
// global fan-out.
func (r *Registry) AllSenders() []Sender {
	out := make([]Sender, 0, len(r.conns))
	for _, e := range r.conns {
		out = append(out, e.sender)
	}
	return out
}

func (r *Registry) addMembership(id domain.ConnID, room domain.RoomID) {
	if e, ok := r.conns[id]; ok {
		e.rooms[room] = struct{}{}
	}
}

func (r *Registry) dropMembership(id domain.ConnID, room domain.RoomID) {
	if e, ok := r.conns[id]; ok {
		delete(e.rooms, room)
	}
}

// Unregister discards the connection record and returns the rooms it was a
// member of, so the caller can vacate them and broadcast per-room goodbyes
// before the identity is gone.
func (r *Registry) Unregister(id domain.ConnID) []domain.RoomID {
	e, ok := r.conns[id]
	if !ok {
		return nil
	}
	vacated := make([]domain.RoomID, 0, len(e.rooms))
	for room := range e.rooms {
		vacated = append(vacated, room)
	}
	delete(r.conns, id)
	log.Info().Str("module", "core.registry").Str("conn", string(id)).Int("rooms", len(vacated)).Msg("unregistered connection")
	return vacated
}
