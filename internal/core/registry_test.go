package core

import (
	"testing"

	"github.com/mkraev/huddle/internal/domain"
)

func TestRegistry_RegisterDefaultsToAnonymous(t *testing.T) {
	r := NewRegistry()
	r.Register("c1", &fakeSender{})

	if got := r.Name("c1"); got != domain.DefaultName {
		t.Fatalf("Name = %q, want %q", got, domain.DefaultName)
	}
	if !r.Has("c1") {
		t.Fatal("Has = false, want true")
	}
	if _, ok := r.Sender("c1"); !ok {
		t.Fatal("Sender ok = false, want true")
	}
}

func TestRegistry_SetName(t *testing.T) {
	r := NewRegistry()
	r.Register("c1", &fakeSender{})

	r.SetName("c1", "alice")
	if got := r.Name("c1"); got != "alice" {
		t.Fatalf("Name = %q, want alice", got)
	}

	// Invalid names leave the previous one in place.
	r.SetName("c1", "")
	if got := r.Name("c1"); got != "alice" {
		t.Fatalf("Name after empty rename = %q, want alice", got)
	}
	long := make([]byte, domain.MaxNameLen+1)
	for i := range long {
		long[i] = 'x'
	}
	r.SetName("c1", string(long))
	if got := r.Name("c1"); got != "alice" {
		t.Fatalf("Name after overlong rename = %q, want alice", got)
	}

	// Unknown connection is a silent no-op.
	r.SetName("ghost", "bob")
	if r.Has("ghost") {
		t.Fatal("SetName created a connection record")
	}
}

func TestRegistry_UnregisterReturnsVacatedRooms(t *testing.T) {
	r := NewRegistry()
	r.Register("c1", &fakeSender{})
	r.addMembership("c1", "r1")
	r.addMembership("c1", "r2")
	r.dropMembership("c1", "r2")

	vacated := r.Unregister("c1")
	if len(vacated) != 1 || vacated[0] != "r1" {
		t.Fatalf("Unregister vacated = %v, want [r1]", vacated)
	}
	if r.Has("c1") {
		t.Fatal("Has after Unregister = true, want false")
	}
	if got := r.Unregister("c1"); got != nil {
		t.Fatalf("second Unregister = %v, want nil", got)
	}
}

func TestRegistry_SendersSkipGone(t *testing.T) {
	r := NewRegistry()
	s1 := &fakeSender{}
	r.Register("c1", s1)

	got := r.Senders([]domain.ConnID{"c1", "ghost"})
	if len(got) != 1 {
		t.Fatalf("Senders len = %d, want 1", len(got))
	}
	if got := r.AllSenders(); len(got) != 1 {
		t.Fatalf("AllSenders len = %d, want 1", len(got))
	}
}
