package repository

import (
	"context"
	"sync"

	"github.com/agenda/agenda-service/internal/agenda"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryContactRepo is an in-memory contacts collection used by unit tests
// and local runs. Iteration follows insertion order.
type MemoryContactRepo struct {
	mu    sync.RWMutex
	order []primitive.ObjectID
	store map[primitive.ObjectID]agenda.Contact
}

func NewMemoryContactRepo() *MemoryContactRepo {
	return &MemoryContactRepo{store: make(map[primitive.ObjectID]agenda.Contact)}
}

func (m *MemoryContactRepo) Find(_ context.Context, f ContactFilter) ([]agenda.Contact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []agenda.Contact{}
	for _, id := range m.order {
		c := m.store[id]
		if f.Name != nil && c.Name != *f.Name {
			continue
		}
		out = append(out, cloneContact(c))
	}
	return out, nil
}

func (m *MemoryContactRepo) FindByID(_ context.Context, id primitive.ObjectID) (*agenda.Contact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	c = cloneContact(c)
	return &c, nil
}

func (m *MemoryContactRepo) FindByPhone(_ context.Context, phone string) (*agenda.Contact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.byPhone(phone); ok {
		c = cloneContact(c)
		return &c, nil
	}
	return nil, ErrNotFound
}

// byPhone returns the first contact (in insertion order) owning phone.
// Callers must hold mu.
func (m *MemoryContactRepo) byPhone(phone string) (agenda.Contact, bool) {
	for _, id := range m.order {
		if c := m.store[id]; c.Phone == phone {
			return c, true
		}
	}
	return agenda.Contact{}, false
}

func (m *MemoryContactRepo) Insert(_ context.Context, nc agenda.NewContact) (*agenda.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := agenda.Contact{ID: primitive.NewObjectID(), Name: nc.Name, Phone: nc.Phone, Teams: copyIDs(nc.Teams)}
	m.store[c.ID] = c
	m.order = append(m.order, c.ID)
	c = cloneContact(c)
	return &c, nil
}

func (m *MemoryContactRepo) UpdateByPhone(_ context.Context, phone, name string, teams []primitive.ObjectID) (*agenda.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byPhone(phone)
	if !ok {
		return nil, ErrNotFound
	}
	c.Name = name
	c.Teams = copyIDs(teams)
	m.store[c.ID] = c
	c = cloneContact(c)
	return &c, nil
}

func (m *MemoryContactRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return ErrNotFound
	}
	delete(m.store, id)
	for i, o := range m.order {
		if o == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MemoryContactRepo) PullTeam(_ context.Context, teamID primitive.ObjectID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var modified int64
	for id, c := range m.store {
		kept := c.Teams[:0:0]
		for _, t := range c.Teams {
			if t != teamID {
				kept = append(kept, t)
			}
		}
		if len(kept) != len(c.Teams) {
			c.Teams = kept
			m.store[id] = c
			modified++
		}
	}
	return modified, nil
}

// MemoryTeamRepo is the in-memory counterpart of MongoTeamRepo.
type MemoryTeamRepo struct {
	mu    sync.RWMutex
	order []primitive.ObjectID
	store map[primitive.ObjectID]agenda.Team
}

func NewMemoryTeamRepo() *MemoryTeamRepo {
	return &MemoryTeamRepo{store: make(map[primitive.ObjectID]agenda.Team)}
}

func (m *MemoryTeamRepo) List(_ context.Context) ([]agenda.Team, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]agenda.Team, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.store[id])
	}
	return out, nil
}

func (m *MemoryTeamRepo) FindByID(_ context.Context, id primitive.ObjectID) (*agenda.Team, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (m *MemoryTeamRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]agenda.Team, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	want := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := []agenda.Team{}
	for _, id := range m.order {
		if want[id] {
			out = append(out, m.store[id])
		}
	}
	return out, nil
}

func (m *MemoryTeamRepo) Insert(_ context.Context, nt agenda.NewTeam) (*agenda.Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := agenda.Team{ID: primitive.NewObjectID(), Name: nt.Name}
	m.store[t.ID] = t
	m.order = append(m.order, t.ID)
	return &t, nil
}

func (m *MemoryTeamRepo) Update(_ context.Context, id primitive.ObjectID, name string) (*agenda.Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	t.Name = name
	m.store[id] = t
	return &t, nil
}

func (m *MemoryTeamRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return ErrNotFound
	}
	delete(m.store, id)
	for i, o := range m.order {
		if o == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func cloneContact(c agenda.Contact) agenda.Contact {
	c.Teams = copyIDs(c.Teams)
	return c
}

func copyIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	out := make([]primitive.ObjectID, len(ids))
	copy(out, ids)
	return out
}
