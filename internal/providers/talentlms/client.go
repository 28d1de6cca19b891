// Package talentlms is a small client for the TalentLMS REST API (v1).
package talentlms

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"adp-lms-sync/internal/apperr"
	"adp-lms-sync/internal/httpx"
)

const (
	contentTypeForm = "application/x-www-form-urlencoded"
	acceptJSON      = "application/json"
)

type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
	Retry   httpx.RetryConfig
	Log     zerolog.Logger
}

// New returns a client for baseURL, e.g. https://acme.talentlms.com/api/v1.
func New(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: timeout, Transport: tr},
		Retry:   httpx.SingleAttempt(),
		Log:     zerolog.Nop(),
	}
}

func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var out []User
	if err := c.do(ctx, "talentlms: list users", http.MethodGet, "/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindUserByEmail returns apperr.ErrNotFound when no user has email.
func (c *Client) FindUserByEmail(ctx context.Context, email string) (User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return User{}, apperr.New(apperr.CodeValidation, "talentlms: find user", "empty email")
	}
	var u User
	if err := c.do(ctx, "talentlms: find user "+email, http.MethodGet, "/users/email:"+url.PathEscape(email), nil, &u); err != nil {
		return User{}, err
	}
	return u, nil
}

// CreateUser signs a user up. An existing login or email is reported as
// apperr.ErrDuplicate, any other rejected field as apperr.ErrValidation.
func (c *Client) CreateUser(ctx context.Context, req SignupRequest) (User, error) {
	form := url.Values{}
	form.Set("first_name", req.FirstName)
	form.Set("last_name", req.LastName)
	form.Set("email", req.Email)
	form.Set("login", req.Login)
	form.Set("password", req.Password)

	var u User
	if err := c.do(ctx, "talentlms: create user "+req.Email, http.MethodPost, "/usersignup", form, &u); err != nil {
		return User{}, err
	}
	return u, nil
}

func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	form := url.Values{}
	form.Set("user_id", userID)
	form.Set("permanent", "yes")
	return c.do(ctx, "talentlms: delete user "+userID, http.MethodPost, "/deleteuser", form, nil)
}

// DeleteUserByEmail resolves the user first and returns the deleted user.
func (c *Client) DeleteUserByEmail(ctx context.Context, email string) (User, error) {
	u, err := c.FindUserByEmail(ctx, email)
	if err != nil {
		return User{}, err
	}
	if err := c.DeleteUser(ctx, u.ID); err != nil {
		return User{}, err
	}
	return u, nil
}

func (c *Client) AddUserToCourse(ctx context.Context, userID, courseID string) ([]Enrollment, error) {
	form := url.Values{}
	form.Set("user_id", userID)
	form.Set("course_id", courseID)
	form.Set("role", "learner")

	var out []Enrollment
	op := fmt.Sprintf("talentlms: enroll user %s in course %s", userID, courseID)
	if err := c.do(ctx, op, http.MethodPost, "/addusertocourse", form, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, form url.Values, out any) error {
	_, body, err := httpx.DoWithRetry(ctx, c.HTTP, func(ctx context.Context) (*http.Request, error) {
		var r *http.Request
		var err error
		if form != nil {
			r, err = http.NewRequestWithContext(ctx, method, c.BaseURL+path, strings.NewReader(form.Encode()))
		} else {
			r, err = http.NewRequestWithContext(ctx, method, c.BaseURL+path, nil)
		}
		if err != nil {
			return nil, err
		}
		if form != nil {
			r.Header.Set("Content-Type", contentTypeForm)
		}
		r.Header.Set("Accept", acceptJSON)
		r.SetBasicAuth(c.APIKey, "")
		return r, nil
	}, c.Retry)
	if err != nil {
		return classify(op, err)
	}
	c.Log.Debug().Str("op", op).Int("bytes", len(body)).Msg("talentlms call")

	if err := httpx.DecodeJSON(body, out); err != nil {
		return apperr.Wrap(apperr.CodeUnknown, op, err)
	}
	return nil
}

// classify reads the TalentLMS error body before falling back to the
// status code: the API answers 400 both for "already exists" and for
// invalid fields.
func classify(op string, err error) error {
	var herr *httpx.HTTPError
	if !errors.As(err, &herr) {
		return httpx.Classify(op, err)
	}

	var body apiError
	if json.Unmarshal(herr.Body, &body) == nil && body.Error.Message != "" {
		msg := body.Error.Message
		lower := strings.ToLower(msg)
		switch {
		case strings.Contains(lower, "already exists") || strings.Contains(lower, "already in use") || strings.Contains(lower, "already taken"):
			return &apperr.Error{Code: apperr.CodeDuplicate, Op: op, Msg: msg, Err: err}
		case herr.StatusCode == http.StatusNotFound || strings.Contains(lower, "does not exist"):
			return &apperr.Error{Code: apperr.CodeNotFound, Op: op, Msg: msg, Err: err}
		case herr.StatusCode == http.StatusBadRequest:
			return &apperr.Error{Code: apperr.CodeValidation, Op: op, Msg: msg, Err: err}
		}
	}
	return httpx.Classify(op, err)
}
