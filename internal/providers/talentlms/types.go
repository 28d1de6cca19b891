package talentlms

import (
	"strings"
	"time"

	"adp-lms-sync/internal/domain"
)

const createdOnLayout = "02/01/2006, 15:04:05"

// User is a TalentLMS user as returned by /users and /usersignup. The API
// sends ids as strings.
type User struct {
	ID        string `json:"id"`
	Login     string `json:"login"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	UserType  string `json:"user_type"`
	Status    string `json:"status"`
	CreatedOn string `json:"created_on"`
}

func (u User) Account() domain.Account {
	a := domain.Account{
		ID:        u.ID,
		Login:     u.Login,
		Email:     strings.TrimSpace(u.Email),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Status:    u.Status,
	}
	if t, err := time.Parse(createdOnLayout, strings.TrimSpace(u.CreatedOn)); err == nil {
		a.CreatedOn = t
	}
	return a
}

type SignupRequest struct {
	FirstName string
	LastName  string
	Email     string
	Login     string
	Password  string
}

type Enrollment struct {
	UserID     string `json:"user_id"`
	CourseID   string `json:"course_id"`
	Role       string `json:"role"`
	CourseName string `json:"course_name"`
}

type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}
