package services

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/revokedtokens"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/users"
	_ "modernc.org/sqlite"
)

// memUsers enforces email uniqueness under a single lock, the way the
// unique index does.
type memUsers struct {
	mu      sync.Mutex
	nextID  int64
	byID    map[int64]models.User
	now     time.Time
	failGet error
}

func newMemUsers() *memUsers {
	return &memUsers{
		byID: make(map[int64]models.User),
		now:  time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (m *memUsers) tick() time.Time {
	m.now = m.now.Add(time.Second)
	return m.now
}

func (m *memUsers) emailOwner(email string) (int64, bool) {
	for id, u := range m.byID {
		if u.Email == email {
			return id, true
		}
	}
	return 0, false
}

func (m *memUsers) Create(_ context.Context, user *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if user.PasswordHash == "" {
		return nil, errors.New("password_hash must not be empty")
	}
	if _, ok := m.emailOwner(user.Email); ok {
		return nil, common.ErrorAlreadyExists
	}

	m.nextID++
	user.ID = m.nextID
	user.CreatedAt = m.tick()
	user.UpdatedAt = user.CreatedAt
	m.byID[user.ID] = *user

	out := *user
	return &out, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failGet != nil {
		return nil, m.failGet
	}
	id, ok := m.emailOwner(email)
	if !ok {
		return nil, common.ErrorNotFound
	}
	u := m.byID[id]
	return &u, nil
}

func (m *memUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (m *memUsers) Update(_ context.Context, id int64, patch models.ProfilePatch) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if patch.Email != nil {
		if owner, taken := m.emailOwner(*patch.Email); taken && owner != id {
			return nil, common.ErrorAlreadyExists
		}
		u.Email = *patch.Email
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	u.UpdatedAt = m.tick()
	m.byID[id] = u

	out := u
	return &out, nil
}

func (m *memUsers) delete(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
}

type fakeManager struct {
	users *memUsers

	mu      sync.Mutex
	handles []dbx.DBTX
}

// lastHandle is the handle the most recent repository was bound to.
func (f *fakeManager) lastHandle() dbx.DBTX {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.handles) == 0 {
		return nil
	}
	return f.handles[len(f.handles)-1]
}

func (f *fakeManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (f *fakeManager) Users(db dbx.DBTX) users.Repository {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handles = append(f.handles, db)
	return f.users
}

func (f *fakeManager) RevokedTokens(dbx.DBTX) revokedtokens.Repository { return nil }
