package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/okian/dwrs/internal/domain/attribute"
	"github.com/okian/dwrs/internal/domain/model"
	"github.com/okian/dwrs/internal/domain/types"
	"github.com/okian/dwrs/pkg/metrics"
)

// snapshot is an immutable view of the roster for lock-free reads.
type snapshot struct {
	order []string
	byID  map[string]*model.Player
}

// MemoryStore is an insertion-ordered roster. Writers serialize on a mutex
// and publish a fresh snapshot; readers only load the snapshot pointer.
type MemoryStore struct {
	mu    sync.Mutex
	order []string
	byID  map[string]*model.Player
	newID func() string

	snap atomic.Pointer[snapshot]
}

// NewMemoryStore creates an empty roster.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		byID:  make(map[string]*model.Player),
		newID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	s.publish()
	return s
}

var _ Store = (*MemoryStore)(nil)

// Upsert stores deep copies of the players. A replaced player keeps its
// original position in the insertion order.
func (s *MemoryStore) Upsert(_ context.Context, players ...model.Player) ([]string, error) {
	for i := range players {
		if strings.TrimSpace(players[i].Name) == "" && strings.TrimSpace(players[i].ID) == "" {
			return nil, fmt.Errorf("%w: record %d has neither id nor name", ErrInvalidPlayer, i)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, len(players))
	for i := range players {
		p := clonePlayer(&players[i])
		p.ID = strings.TrimSpace(p.ID)
		if p.ID == "" {
			p.ID = s.newID()
		}
		if _, exists := s.byID[p.ID]; !exists {
			s.order = append(s.order, p.ID)
		}
		s.byID[p.ID] = p
		ids[i] = p.ID
	}
	s.publish()
	return ids, nil
}

// Get returns a copy of the stored player.
func (s *MemoryStore) Get(_ context.Context, id string) (model.Player, error) {
	p, ok := s.snap.Load().byID[id]
	if !ok {
		return model.Player{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return *clonePlayer(p), nil
}

// Delete removes the player with id.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.byID, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i:i], s.order[i+1:]...)
			break
		}
	}
	s.publish()
	return nil
}

// Pool returns copies of matching players. Explicit ids that are unknown
// return ErrNotFound; duplicates are dropped.
func (s *MemoryStore) Pool(ctx context.Context, f Filter) ([]model.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snap := s.snap.Load()

	order := snap.order
	if len(f.IDs) > 0 {
		order = make([]string, 0, len(f.IDs))
		seen := make(map[string]struct{}, len(f.IDs))
		for _, id := range f.IDs {
			if _, ok := snap.byID[id]; !ok {
				return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			order = append(order, id)
		}
	}

	out := make([]model.Player, 0, len(order))
	for _, id := range order {
		p := snap.byID[id]
		if f.Club != "" && !strings.EqualFold(p.Club, f.Club) {
			continue
		}
		if f.MaxAge > 0 && p.Age > f.MaxAge {
			continue
		}
		out = append(out, *clonePlayer(p))
	}
	return out, nil
}

// Count returns the number of stored players.
func (s *MemoryStore) Count(_ context.Context) int {
	return len(s.snap.Load().order)
}

// publish must be called with mu held.
func (s *MemoryStore) publish() {
	snap := &snapshot{
		order: append([]string(nil), s.order...),
		byID:  make(map[string]*model.Player, len(s.byID)),
	}
	for k, v := range s.byID {
		snap.byID[k] = v
	}
	s.snap.Store(snap)
	metrics.UpdateRosterSize(len(snap.order))
}

func clonePlayer(p *model.Player) *model.Player {
	c := *p
	c.Attributes = make(map[attribute.Name]int, len(p.Attributes))
	for k, v := range p.Attributes {
		c.Attributes[k] = v
	}
	c.NaturalPositions = append([]types.Position(nil), p.NaturalPositions...)
	c.Roles = append([]string(nil), p.Roles...)
	return &c
}
