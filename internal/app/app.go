// Package app holds the wiring the command line tools share: configuration
// with secret-store overlay, logging, API clients, confirmation prompts and
// exit codes.
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"adp-lms-sync/internal/apperr"
	"adp-lms-sync/internal/config"
	"adp-lms-sync/internal/httpx"
	"adp-lms-sync/internal/logger"
	"adp-lms-sync/internal/mappers"
	"adp-lms-sync/internal/providers/adp"
	"adp-lms-sync/internal/providers/talentlms"
	"adp-lms-sync/internal/secrets"
)

// Env is what a command needs once configuration is loaded.
type Env struct {
	Config config.Config
	Log    zerolog.Logger
	RunID  string

	In  io.Reader
	Out io.Writer
}

// Setup loads configuration, overlays credentials from the configured secret
// store and builds the logger. Every log line carries the tool and run id.
func Setup(ctx context.Context, tool string) (*Env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	log := logger.New(cfg.Log, tool).With().Str("run_id", runID).Logger()

	if cfg.Secrets.Source != "" {
		values, err := secrets.Fetch(ctx, cfg.Secrets)
		if err != nil {
			return nil, err
		}
		cfg.ApplySecrets(values)
		log.Debug().Str("source", cfg.Secrets.Source).Int("values", len(values)).Msg("credentials loaded from secret store")
	}

	return &Env{Config: cfg, Log: log, RunID: runID, In: os.Stdin, Out: os.Stdout}, nil
}

// Context bounds a whole run by SYNC_TIMEOUT.
func (e *Env) Context(parent context.Context) (context.Context, context.CancelFunc) {
	if e.Config.Sync.Timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, e.Config.Sync.Timeout)
}

func (e *Env) ADPDirectory() (*adp.Directory, error) {
	if err := e.Config.ADP.Validate(); err != nil {
		return nil, err
	}
	c, err := adp.New(e.Config.ADP, e.Config.HTTP, e.Log)
	if err != nil {
		return nil, err
	}
	return adp.NewDirectory(c), nil
}

func (e *Env) TalentLMSStore() (*talentlms.Store, error) {
	tc := e.Config.TalentLMS
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	c := talentlms.New(tc.TalentLMSURL(), tc.APIKey, e.Config.HTTP.Timeout)
	c.Retry = httpx.RetryConfigFor(e.Config.HTTP.MaxAttempts)
	c.Log = e.Log
	return talentlms.NewStore(c, mappers.SignupFunc(mappers.SignupOptions{
		InitialPassword: tc.InitialPassword,
	})), nil
}

// Confirm asks a yes/no question on out and reads the answer from in.
// Only "y" and "yes" confirm; end of input declines.
func Confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	if _, err := fmt.Fprintf(out, "%s [y/N]: ", prompt); err != nil {
		return false, err
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Execute runs the command and maps its error onto the exit status.
func Execute(cmd *cobra.Command) int {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	start := time.Now()
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v (after %s)\n", err, time.Since(start).Round(time.Millisecond))
	}
	return apperr.ExitCode(err)
}
