// Package memory is a process-local user storage for development and tests.
package memory

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/varlopecar/react-form/shared/domain"
	internal_errors "github.com/varlopecar/react-form/shared/errors"
)

var (
	errUserNotFound = &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
	errDuplicate    = &internal_errors.ErrorWithStatusCode{Message: "Email already registered", StatusCode: http.StatusConflict}
)

// Storage keeps users in a map. Ids grow monotonically and are never reused,
// even after a delete.
type Storage struct {
	mu      sync.RWMutex
	users   map[domain.UserId]domain.User
	byEmail map[domain.Email]domain.UserId
	lastId  domain.UserId
	now     func() time.Time
}

func New() *Storage {
	return &Storage{
		users:   make(map[domain.UserId]domain.User),
		byEmail: make(map[domain.Email]domain.UserId),
		now:     time.Now,
	}
}

func (s *Storage) SaveUser(ctx context.Context, user domain.User) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[user.Email]; exists {
		return domain.User{}, errDuplicate
	}

	s.lastId++
	now := s.now().UTC()
	user.Id = s.lastId
	user.CreatedAt = now
	user.UpdatedAt = now

	s.users[user.Id] = user
	s.byEmail[user.Email] = user.Id
	return user, nil
}

func (s *Storage) UserByEmail(ctx context.Context, email domain.Email) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return domain.User{}, errUserNotFound
	}
	return s.users[id], nil
}

func (s *Storage) UserById(ctx context.Context, id domain.UserId) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return domain.User{}, errUserNotFound
	}
	return user, nil
}

// Users returns every user ordered by id.
func (s *Storage) Users(ctx context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Id < users[j].Id })
	return users, nil
}

func (s *Storage) UpdatePassword(ctx context.Context, id domain.UserId, passHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return errUserNotFound
	}
	user.PassHash = passHash
	user.UpdatedAt = s.now().UTC()
	s.users[id] = user
	return nil
}

func (s *Storage) DeleteUser(ctx context.Context, id domain.UserId) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return errUserNotFound
	}
	delete(s.users, id)
	delete(s.byEmail, user.Email)
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Storage) Cleanup() error {
	return nil
}
