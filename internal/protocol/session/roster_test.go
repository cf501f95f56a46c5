package session

import (
	"sync"
	"testing"

	"github.com/danmuck/mcctl/internal/protocol/packet"
	"github.com/danmuck/mcctl/internal/testutil/testlog"
	"github.com/google/uuid"
)

func addInfo(entries ...packet.PlayerInfoEntry) packet.PlayerInfo {
	return packet.PlayerInfo{Action: packet.ActionAddPlayer, Entries: entries}
}

func TestRosterFirstNameWins(t *testing.T) {
	testlog.Start(t)

	r := NewRoster()
	id := uuid.New()
	if added, _ := r.Apply(addInfo(packet.PlayerInfoEntry{ID: id, Name: "first"})); added != 1 {
		t.Fatalf("expected 1 add, got %d", added)
	}
	if added, _ := r.Apply(addInfo(packet.PlayerInfoEntry{ID: id, Name: "second"})); added != 0 {
		t.Fatalf("expected duplicate add ignored, got %d", added)
	}
	p, ok := r.Lookup(id)
	if !ok || p.Name != "first" {
		t.Fatalf("unexpected participant: %+v ok=%v", p, ok)
	}
}

func TestRosterRemoveAbsentIsNoop(t *testing.T) {
	testlog.Start(t)

	r := NewRoster()
	keep := uuid.New()
	r.Apply(addInfo(packet.PlayerInfoEntry{ID: keep, Name: "keep"}))
	_, removed := r.Apply(packet.PlayerInfo{Action: packet.ActionRemovePlayer, Entries: []packet.PlayerInfoEntry{{ID: uuid.New()}}})
	if removed != 0 || r.Len() != 1 {
		t.Fatalf("expected no-op remove, removed=%d len=%d", removed, r.Len())
	}
	_, removed = r.Apply(packet.PlayerInfo{Action: packet.ActionRemovePlayer, Entries: []packet.PlayerInfoEntry{{ID: keep}}})
	if removed != 1 || r.Len() != 0 {
		t.Fatalf("expected remove, removed=%d len=%d", removed, r.Len())
	}
}

func TestRosterUpdatesDoNotMutate(t *testing.T) {
	testlog.Start(t)

	r := NewRoster()
	id := uuid.New()
	r.Apply(addInfo(packet.PlayerInfoEntry{ID: id, Name: "steady"}))
	name := "renamed"
	r.Apply(packet.PlayerInfo{Action: packet.ActionUpdateDisplayName, Entries: []packet.PlayerInfoEntry{{ID: id, DisplayName: &name}}})
	r.Apply(packet.PlayerInfo{Action: packet.ActionUpdateLatency, Entries: []packet.PlayerInfoEntry{{ID: uuid.New(), Latency: 5}}})
	if p, _ := r.Lookup(id); p.Name != "steady" || r.Len() != 1 {
		t.Fatalf("unexpected roster state: %+v len=%d", p, r.Len())
	}
}

func TestFormatListingMatchesSize(t *testing.T) {
	testlog.Start(t)

	r := NewRoster()
	r.Apply(addInfo(
		packet.PlayerInfoEntry{ID: uuid.New(), Name: "bob"},
		packet.PlayerInfoEntry{ID: uuid.New(), Name: "alice"},
	))
	got := FormatListing(r.Snapshot())
	if got != "Online Players (2): [alice, bob]" {
		t.Fatalf("unexpected listing: %q", got)
	}
	if FormatListing(nil) != "Online Players (0): []" {
		t.Fatalf("unexpected empty listing: %q", FormatListing(nil))
	}
}

func TestRosterConcurrentReaders(t *testing.T) {
	testlog.Start(t)

	r := NewRoster()
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			id := uuid.New()
			r.Apply(addInfo(packet.PlayerInfoEntry{ID: id, Name: "p"}))
			r.Apply(packet.PlayerInfo{Action: packet.ActionRemovePlayer, Entries: []packet.PlayerInfoEntry{{ID: id}}})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_ = FormatListing(r.Snapshot())
		}
	}()
	wg.Wait()
	if r.Len() != 0 {
		t.Fatalf("expected empty roster, got %d", r.Len())
	}
}
