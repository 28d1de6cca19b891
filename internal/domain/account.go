package domain

import "time"

// Account is a learner record in the learning platform. This system only
// creates and deletes accounts, it never edits them.
type Account struct {
	ID        string
	Login     string
	Email     string
	FirstName string
	LastName  string
	Status    string
	CreatedOn time.Time
}

// MatchesEmail reports whether the account belongs to email, ignoring case
// and surrounding whitespace.
func (a Account) MatchesEmail(email string) bool {
	n := NormalizeEmail(email)
	return n != "" && NormalizeEmail(a.Email) == n
}
