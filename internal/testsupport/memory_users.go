package testsupport

import (
	"sync"

	"github.com/mcalvo/bracket-tracker-api/internal/domain"
	"github.com/mcalvo/bracket-tracker-api/internal/domain/entity"
)

// MemoryUserRepo implementa repository.UserRepository en memoria.
type MemoryUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{users: make(map[string]*entity.User)}
}

func (r *MemoryUserRepo) Create(user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *MemoryUserRepo) GetByID(id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *MemoryUserRepo) GetByEmail(email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// MemorySettingsRepo implementa repository.SettingsRepository en memoria.
type MemorySettingsRepo struct {
	mu     sync.Mutex
	stored *entity.StockSettings
}

func NewMemorySettingsRepo() *MemorySettingsRepo { return &MemorySettingsRepo{} }

func (r *MemorySettingsRepo) Get() (*entity.StockSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stored == nil {
		return nil, nil
	}
	cp := *r.stored
	return &cp, nil
}

func (r *MemorySettingsRepo) Save(settings *entity.StockSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *settings
	r.stored = &cp
	return nil
}
