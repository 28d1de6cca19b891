package app

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adp-lms-sync/internal/apperr"
	"adp-lms-sync/internal/config"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{" YES \n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"yes", true},
		{"sure\n", false},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		got, err := Confirm(strings.NewReader(tt.input), &out, "Create 3 accounts?")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
		assert.Equal(t, "Create 3 accounts? [y/N]: ", out.String())
	}
}

func TestExecuteExitCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"ok", nil, 0},
		{"auth", apperr.New(apperr.CodeAuth, "adp", "token rejected"), 2},
		{"not found", apperr.New(apperr.CodeNotFound, "talentlms", "no user"), 3},
		{"config", apperr.New(apperr.CodeConfig, "config", "missing env"), 4},
		{"other", errors.New("boom"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			cmd := &cobra.Command{Use: "x", RunE: func(*cobra.Command, []string) error { return tt.err }}
			cmd.SetArgs([]string{})
			cmd.SetErr(&stderr)

			assert.Equal(t, tt.want, Execute(cmd))
			if tt.err != nil {
				assert.Contains(t, stderr.String(), tt.err.Error())
			}
		})
	}
}

func TestSetupAndClients(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("SECRETS_SOURCE", "")
	t.Setenv("KSM_CONFIG_BASE64", "")
	t.Setenv("AWS_SECRET_ID", "")
	t.Setenv("TALENTLMS_DOMAIN", "acme")
	t.Setenv("TALENTLMS_API_KEY", "k")
	t.Setenv("ADP_CLIENT_ID", "")
	t.Setenv("SYNC_TIMEOUT", "1m")

	env, err := Setup(context.Background(), "test")
	require.NoError(t, err)
	assert.NotEmpty(t, env.RunID)

	store, err := env.TalentLMSStore()
	require.NoError(t, err)
	assert.Equal(t, "https://acme.talentlms.com/api/v1", store.C.BaseURL)

	_, err = env.ADPDirectory()
	assert.ErrorIs(t, err, apperr.ErrConfig)

	ctx, cancel := env.Context(context.Background())
	defer cancel()
	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
}

func TestContextWithoutTimeout(t *testing.T) {
	env := &Env{Config: config.Config{}}
	ctx, cancel := env.Context(context.Background())
	defer cancel()
	_, ok := ctx.Deadline()
	assert.False(t, ok)
}
