package memory

import (
	"context"
	"strings"
	"sync"

	domainuser "staysia/internal/domain/user"
)

// UserRepository knows registered emails. Accounts are owned by the external auth service.
type UserRepository struct {
	mu      sync.RWMutex
	byEmail map[string]domainuser.User
}

func NewUserRepository(users ...domainuser.User) *UserRepository {
	r := &UserRepository{byEmail: make(map[string]domainuser.User, len(users))}
	for _, u := range users {
		r.Add(u)
	}
	return r
}

func (r *UserRepository) Add(u domainuser.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byEmail[strings.ToLower(strings.TrimSpace(u.Email))] = u
}

func (r *UserRepository) EmailExists(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byEmail[strings.ToLower(strings.TrimSpace(email))]
	return ok, nil
}

var _ domainuser.Repository = (*UserRepository)(nil)
