package session

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/danmuck/mcctl/internal/observability"
	"github.com/danmuck/mcctl/internal/protocol/packet"
	"github.com/google/uuid"
)

// Participant is one remote player known to the session.
type Participant struct {
	ID   uuid.UUID
	Name string
}

// Roster maps participant ids to names for the lifetime of one session.
// The inbound loop is the only writer.
type Roster struct {
	mu    sync.Mutex
	items map[uuid.UUID]Participant
}

func NewRoster() *Roster {
	return &Roster{
		items: make(map[uuid.UUID]Participant),
	}
}

// Apply folds one player info packet into the roster under a single lock.
// Adds keep the first name seen for an id; removes of unknown ids are no-ops.
// Other actions carry no roster state.
func (r *Roster) Apply(info packet.PlayerInfo) (added, removed int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch info.Action {
	case packet.ActionAddPlayer:
		for _, e := range info.Entries {
			if _, ok := r.items[e.ID]; ok {
				continue
			}
			r.items[e.ID] = Participant{ID: e.ID, Name: e.Name}
			added++
		}
	case packet.ActionRemovePlayer:
		for _, e := range info.Entries {
			if _, ok := r.items[e.ID]; !ok {
				continue
			}
			delete(r.items, e.ID)
			removed++
		}
	}
	observability.SetRosterSize(len(r.items))
	return added, removed
}

func (r *Roster) Lookup(id uuid.UUID) (Participant, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	return p, ok
}

func (r *Roster) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// Snapshot copies the roster sorted by name.
func (r *Roster) Snapshot() []Participant {
	r.mu.Lock()
	out := make([]Participant, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, p)
	}
	r.mu.Unlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

// FormatListing renders "Online Players (N): [a, b]".
func FormatListing(players []Participant) string {
	var b strings.Builder
	b.WriteString("Online Players (")
	b.WriteString(strconv.Itoa(len(players)))
	b.WriteString("): [")
	for i, p := range players {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name)
	}
	b.WriteString("]")
	return b.String()
}
