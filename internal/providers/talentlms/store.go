package talentlms

import (
	"context"

	"adp-lms-sync/internal/domain"
)

// SignupFunc turns a worker into a signup request.
type SignupFunc func(domain.Worker) (SignupRequest, error)

// Store exposes the client in domain terms.
type Store struct {
	C      *Client
	Signup SignupFunc
}

func NewStore(c *Client, signup SignupFunc) *Store {
	return &Store{C: c, Signup: signup}
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (domain.Account, error) {
	u, err := s.C.FindUserByEmail(ctx, email)
	if err != nil {
		return domain.Account{}, err
	}
	return u.Account(), nil
}

func (s *Store) CreateUser(ctx context.Context, w domain.Worker) (domain.Account, error) {
	req, err := s.Signup(w)
	if err != nil {
		return domain.Account{}, err
	}
	u, err := s.C.CreateUser(ctx, req)
	if err != nil {
		return domain.Account{}, err
	}
	return u.Account(), nil
}

func (s *Store) DeleteUserByEmail(ctx context.Context, email string) (domain.Account, error) {
	u, err := s.C.DeleteUserByEmail(ctx, email)
	if err != nil {
		return domain.Account{}, err
	}
	return u.Account(), nil
}

func (s *Store) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	users, err := s.C.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Account, 0, len(users))
	for _, u := range users {
		out = append(out, u.Account())
	}
	return out, nil
}

func (s *Store) Enroll(ctx context.Context, accountID, courseID string) error {
	_, err := s.C.AddUserToCourse(ctx, accountID, courseID)
	return err
}
