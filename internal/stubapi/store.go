package stubapi

import (
	"sort"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/docustore/admin-console/internal/core/domain"
)

// account pairs a directory user with its password hash. Hashes never
// leave the stub.
type account struct {
	user domain.User
	hash []byte
}

// store is the in-memory dataset the stub serves. It is seeded at startup
// and mutated only by the delete handler; the stub deliberately has no
// external dependencies so it can run anywhere.
type store struct {
	mu        sync.RWMutex
	accounts  map[string]*account
	documents map[int64]domain.Document
	companies []domain.Company
	types     []domain.ResourceType
	acl       []domain.ACLEntry
}

func newStore() *store {
	s := &store{
		accounts:  map[string]*account{},
		documents: map[int64]domain.Document{},
	}
	s.seed()
	return s
}

// seed loads the fixture dataset: two companies, three users, a handful of
// documents. Passwords are hashed with the minimum bcrypt cost; this is a
// development fixture, not a credential store.
func (s *store) seed() {
	now := time.Now().UTC()

	s.companies = []domain.Company{
		{ID: 1, Name: "Initech"},
		{ID: 2, Name: "Globex"},
	}
	s.types = []domain.ResourceType{
		{ID: 1, Name: "contract"},
		{ID: 2, Name: "invoice"},
		{ID: 3, Name: "report"},
	}

	users := []struct {
		user     domain.User
		password string
	}{
		{
			user: domain.User{
				ID: 1, Username: "alice", Email: "alice@initech.example",
				Roles: []string{"ROLE_SYS_ADMIN"}, CompanyID: 1,
				CreatedAt: now, UpdatedAt: now,
			},
			password: "alice123",
		},
		{
			user: domain.User{
				ID: 2, Username: "bob", Email: "bob@initech.example",
				Roles: []string{"ROLE_USER"}, CompanyID: 1,
				CreatedAt: now, UpdatedAt: now,
			},
			password: "bob123",
		},
		{
			user: domain.User{
				ID: 3, Username: "carol", Email: "carol@globex.example",
				Roles: []string{"ROLE_COMPANY_ADMIN", "ROLE_USER"}, CompanyID: 2,
				CreatedAt: now, UpdatedAt: now,
			},
			password: "carol123",
		},
	}
	for _, u := range users {
		hash, _ := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.MinCost)
		s.accounts[u.user.Username] = &account{user: u.user, hash: hash}
	}

	docs := []domain.Document{
		{ID: 1, Name: "Master Services Agreement", FileName: "msa.pdf", Version: 3, CompanyID: 1, TypeID: 1},
		{ID: 2, Name: "Q3 Invoice", FileName: "q3-invoice.pdf", Version: 1, CompanyID: 1, TypeID: 2},
		{ID: 3, Name: "Audit Report", FileName: "audit-2025.pdf", Version: 2, CompanyID: 2, TypeID: 3},
	}
	for _, d := range docs {
		d.CreatedAt, d.UpdatedAt = now, now
		s.documents[d.ID] = d
	}

	s.acl = []domain.ACLEntry{
		{ID: 1, ResourceID: 1, UserID: 2, CanRead: true, CanWrite: false},
		{ID: 2, ResourceID: 2, UserID: 2, CanRead: true, CanWrite: true},
		{ID: 3, ResourceID: 3, UserID: 3, CanRead: true, CanWrite: true},
	}
}

// authenticate verifies a username/password pair.
func (s *store) authenticate(username, password string) (domain.User, error) {
	s.mu.RLock()
	acct, ok := s.accounts[username]
	s.mu.RUnlock()
	if !ok {
		return domain.User{}, domain.ErrAuthRejected
	}
	if bcrypt.CompareHashAndPassword(acct.hash, []byte(password)) != nil {
		return domain.User{}, domain.ErrAuthRejected
	}
	return acct.user, nil
}

// userByName resolves the directory record behind a token subject.
func (s *store) userByName(username string) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acct, ok := s.accounts[username]
	if !ok {
		return domain.User{}, false
	}
	return acct.user, true
}

func (s *store) listDocuments(companyID int64, all bool) []domain.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Document, 0, len(s.documents))
	for _, d := range s.documents {
		if all || d.CompanyID == companyID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *store) document(id int64) (domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.documents[id]
	if !ok {
		return domain.Document{}, domain.ErrNotFound
	}
	return d, nil
}

func (s *store) deleteDocument(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.documents, id)
	return nil
}

func (s *store) listUsers() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.User, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a.user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *store) user(id int64) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.accounts {
		if a.user.ID == id {
			return a.user, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (s *store) listCompanies() []domain.Company {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Company(nil), s.companies...)
}

func (s *store) listResourceTypes() []domain.ResourceType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.ResourceType(nil), s.types...)
}

func (s *store) listACL(resourceID int64) []domain.ACLEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.ACLEntry{}
	for _, e := range s.acl {
		if resourceID == 0 || e.ResourceID == resourceID {
			out = append(out, e)
		}
	}
	return out
}
