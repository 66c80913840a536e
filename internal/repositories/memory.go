package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rohits-web03/nudge/internal/models"
)

// MemoryStore is a Store kept in process memory. It is used when no
// database is configured and in tests.
type MemoryStore struct {
	mu    sync.Mutex
	users map[string]*models.User
	byID  map[uuid.UUID]*models.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[string]*models.User),
		byID:  make(map[uuid.UUID]*models.User),
	}
}

func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[email]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneUser(u), nil
}

func (s *MemoryStore) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.Email]; ok {
		return ErrConflict
	}

	u.AssignIDs()
	now := time.Now()
	u.CreatedAt, u.UpdatedAt = now, now

	stored := cloneUser(u)
	stored.Tasks, stored.Interactions = nil, nil
	s.users[u.Email] = stored
	s.byID[u.ID] = stored
	return nil
}

func (s *MemoryStore) ClearInitial(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[userID]
	if !ok {
		return ErrNotFound
	}
	u.Initial = false
	return nil
}

func (s *MemoryStore) AcquireLease(_ context.Context, userID uuid.UUID, field models.LeaseField, now time.Time, window time.Duration) (bool, error) {
	if _, err := leaseColumn(field); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[userID]
	if !ok {
		return false, nil
	}
	if models.Within(u.Lease(field), now, window) {
		return false, nil
	}
	u.SetLease(field, now)
	return true, nil
}

func (s *MemoryStore) AddTask(_ context.Context, t *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[t.UserID]
	if !ok {
		return fmt.Errorf("add task: %w", ErrNotFound)
	}
	t.AssignIDs()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	u.Tasks = append(u.Tasks, *t)
	return nil
}

func (s *MemoryStore) AddInteraction(_ context.Context, i *models.Interaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[i.UserID]
	if !ok {
		return fmt.Errorf("add interaction: %w", ErrNotFound)
	}
	i.AssignIDs()
	u.Interactions = append(u.Interactions, *i)
	sort.SliceStable(u.Interactions, func(a, b int) bool {
		return u.Interactions[a].Date.Before(u.Interactions[b].Date)
	})
	return nil
}

func (s *MemoryStore) SetSurvey(_ context.Context, interactionID uuid.UUID, survey string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.byID {
		for idx := range u.Interactions {
			in := &u.Interactions[idx]
			if in.ID != interactionID {
				continue
			}
			if in.Survey != nil {
				return false, nil
			}
			v := survey
			in.Survey = &v
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) Close() error { return nil }

func cloneUser(u *models.User) *models.User {
	c := *u
	c.Tasks = append([]models.Task(nil), u.Tasks...)
	c.Interactions = append([]models.Interaction(nil), u.Interactions...)
	return &c
}
