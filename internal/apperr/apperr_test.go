package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesByCode(t *testing.T) {
	err := New(CodeNotFound, "talentlms: find user", "no user with email a@x.com")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrAuth))
	assert.Equal(t, "talentlms: find user: no user with email a@x.com", err.Error())
}

func TestWrapKeepsExistingCode(t *testing.T) {
	inner := New(CodeDuplicate, "talentlms: signup", "user exists")
	outer := Wrap(CodeTransient, "sync", fmt.Errorf("create: %w", inner))

	assert.Equal(t, CodeDuplicate, CodeOf(outer))
	assert.True(t, errors.Is(outer, ErrDuplicate))
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(CodeAuth, "op", nil))
}

func TestCodeOfPlainError(t *testing.T) {
	assert.Equal(t, CodeUnknown, CodeOf(errors.New("boom")))
	assert.Equal(t, Code(""), CodeOf(nil))
}

func TestExitCode(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"auth", New(CodeAuth, "adp", "bad credentials"), 2},
		{"not found", New(CodeNotFound, "adp", "no worker"), 3},
		{"config", New(CodeConfig, "config", "missing key"), 4},
		{"validation", New(CodeValidation, "adp", "ambiguous"), 1},
		{"plain", errors.New("boom"), 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExitCode(tc.err))
		})
	}
}
