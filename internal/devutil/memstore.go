// Package devutil has in-memory stand-ins for the ADP roster and the
// TalentLMS account store, for exercising the command line tools without
// either API.
package devutil

import (
	"context"
	"sort"
	"strconv"

	"adp-lms-sync/internal/apperr"
	"adp-lms-sync/internal/domain"
)

// MemStore is a providers.AccountStore kept in memory. Errors queued in
// FailFind / FailCreate are returned for the matching email. Lookups records
// every email passed to FindUserByEmail.
type MemStore struct {
	accounts map[string]domain.Account
	nextID   int

	FailFind   map[string]error
	FailCreate map[string]error
	FailEnroll error

	Lookups  []string
	Created  []string
	Deleted  []string
	Enrolled map[string]string
}

func NewMemStore(emails ...string) *MemStore {
	s := &MemStore{
		accounts:   map[string]domain.Account{},
		FailFind:   map[string]error{},
		FailCreate: map[string]error{},
		Enrolled:   map[string]string{},
	}
	for _, e := range emails {
		s.add(domain.Account{Email: e, Login: e})
	}
	return s
}

func (s *MemStore) add(a domain.Account) domain.Account {
	s.nextID++
	a.ID = strconv.Itoa(s.nextID)
	a.Status = "active"
	s.accounts[domain.NormalizeEmail(a.Email)] = a
	return a
}

func (s *MemStore) FindUserByEmail(_ context.Context, email string) (domain.Account, error) {
	s.Lookups = append(s.Lookups, email)
	if err := s.FailFind[email]; err != nil {
		return domain.Account{}, err
	}
	if a, ok := s.accounts[domain.NormalizeEmail(email)]; ok {
		return a, nil
	}
	return domain.Account{}, apperr.Newf(apperr.CodeNotFound, "memstore", "no user with email %s", email)
}

func (s *MemStore) CreateUser(_ context.Context, w domain.Worker) (domain.Account, error) {
	if err := s.FailCreate[w.Email]; err != nil {
		return domain.Account{}, err
	}
	if _, ok := s.accounts[domain.NormalizeEmail(w.Email)]; ok {
		return domain.Account{}, apperr.Newf(apperr.CodeDuplicate, "memstore", "%s already exists", w.Email)
	}
	s.Created = append(s.Created, w.Email)
	return s.add(domain.Account{Email: w.Email, Login: w.Email, FirstName: w.FirstName, LastName: w.LastName}), nil
}

func (s *MemStore) DeleteUserByEmail(ctx context.Context, email string) (domain.Account, error) {
	a, err := s.FindUserByEmail(ctx, email)
	if err != nil {
		return domain.Account{}, err
	}
	delete(s.accounts, domain.NormalizeEmail(email))
	s.Deleted = append(s.Deleted, a.Email)
	return a, nil
}

// ListAccounts returns accounts ordered by id.
func (s *MemStore) ListAccounts(context.Context) ([]domain.Account, error) {
	out := make([]domain.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		a, _ := strconv.Atoi(out[i].ID)
		b, _ := strconv.Atoi(out[j].ID)
		return a < b
	})
	return out, nil
}

func (s *MemStore) Enroll(_ context.Context, accountID, courseID string) error {
	if s.FailEnroll != nil {
		return s.FailEnroll
	}
	s.Enrolled[accountID] = courseID
	return nil
}

func (s *MemStore) Len() int { return len(s.accounts) }
