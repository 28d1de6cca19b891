package mappers

import (
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"adp-lms-sync/internal/apperr"
	"adp-lms-sync/internal/domain"
	"adp-lms-sync/internal/providers/talentlms"
)

const (
	fallbackFirstName = "Unknown"
	fallbackLastName  = "User"
)

type SignupOptions struct {
	// InitialPassword is used for every new account when set; otherwise
	// each account gets a random one and signs in through a reset.
	InitialPassword string
}

// WorkerToSignup builds the TalentLMS signup for w. The login is the work
// email. A worker without a usable email is a validation error.
func WorkerToSignup(w domain.Worker, opts SignupOptions) (talentlms.SignupRequest, error) {
	email, err := ValidEmail(w.Email)
	if err != nil {
		return talentlms.SignupRequest{}, err
	}

	first, last := names(w)
	pw := opts.InitialPassword
	if pw == "" {
		pw = GeneratePassword()
	}

	return talentlms.SignupRequest{
		FirstName: first,
		LastName:  last,
		Email:     email,
		Login:     email,
		Password:  pw,
	}, nil
}

// SignupFunc adapts WorkerToSignup for talentlms.NewStore.
func SignupFunc(opts SignupOptions) talentlms.SignupFunc {
	return func(w domain.Worker) (talentlms.SignupRequest, error) {
		return WorkerToSignup(w, opts)
	}
}

// ValidEmail trims email and checks it is a bare address.
func ValidEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", apperr.New(apperr.CodeValidation, "signup", "no work email")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@")+1:], ".") {
		return "", apperr.Newf(apperr.CodeValidation, "signup", "malformed work email %q", email)
	}
	return email, nil
}

// names falls back to the formatted name, then to "Unknown User".
func names(w domain.Worker) (string, string) {
	first, last := strings.TrimSpace(w.FirstName), strings.TrimSpace(w.LastName)
	if first == "" && last == "" {
		if parts := strings.Fields(w.FullName); len(parts) > 0 {
			first = parts[0]
			last = strings.Join(parts[1:], " ")
		}
	}
	if first == "" {
		first = fallbackFirstName
	}
	if last == "" {
		last = fallbackLastName
	}
	return first, last
}

// GeneratePassword returns a random password that satisfies the TalentLMS
// rules (upper, lower, digit, 8+ chars).
func GeneratePassword() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "Tl" + hex[:14] + "!7"
}
