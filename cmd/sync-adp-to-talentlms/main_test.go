package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adp-lms-sync/internal/app"
	"adp-lms-sync/internal/apperr"
	"adp-lms-sync/internal/devutil"
	"adp-lms-sync/internal/providers/adp"
)

func testEnv(input string) (*app.Env, *bytes.Buffer) {
	var out bytes.Buffer
	return &app.Env{Log: zerolog.Nop(), In: strings.NewReader(input), Out: &out}, &out
}

func TestRunManagerScope(t *testing.T) {
	env, out := testEnv("")
	dir := adp.NewDirectory(&devutil.Roster{Workers: devutil.SampleOrg()})
	store := devutil.NewMemStore("bob@example.com")

	err := run(context.Background(), env, dir, store, options{manager: "ana@example.com"})

	require.NoError(t, err)
	assert.Equal(t, []string{"eve@example.com"}, store.Created, "bob has an account, tom is terminated")
	assert.Contains(t, out.String(), "Filtering to employees under Ana Diaz")
	assert.Contains(t, out.String(), "New accounts created:        1")
	assert.Contains(t, out.String(), "Already had accounts:        1")
}

func TestRunFullRosterAsksFirst(t *testing.T) {
	env, out := testEnv("n\n")
	dir := adp.NewDirectory(&devutil.Roster{Workers: devutil.SampleOrg()})
	store := devutil.NewMemStore()

	err := run(context.Background(), env, dir, store, options{})

	require.NoError(t, err)
	assert.Empty(t, store.Created)
	assert.Contains(t, out.String(), "Create 5 TalentLMS accounts for the full roster? [y/N]")
	assert.Contains(t, out.String(), "Aborted")
}

func TestRunFullRosterConfirmed(t *testing.T) {
	env, _ := testEnv("yes\n")
	env.Config.TalentLMS.OnboardingCourseID = "42"
	dir := adp.NewDirectory(&devutil.Roster{Workers: devutil.SampleOrg()})
	store := devutil.NewMemStore()

	require.NoError(t, run(context.Background(), env, dir, store, options{}))

	assert.Len(t, store.Created, 5)
	assert.Len(t, store.Enrolled, 5)
}

func TestRunYesSkipsPromptAndIsIdempotent(t *testing.T) {
	env, _ := testEnv("")
	dir := adp.NewDirectory(&devutil.Roster{Workers: devutil.SampleOrg()})
	store := devutil.NewMemStore()

	require.NoError(t, run(context.Background(), env, dir, store, options{yes: true}))
	require.Len(t, store.Created, 5)

	store.Created = nil
	env2, out := testEnv("")
	require.NoError(t, run(context.Background(), env2, dir, store, options{yes: true}))
	assert.Empty(t, store.Created)
	assert.Contains(t, out.String(), "Already had accounts:        5")
}

func TestRunDryRunWritesReport(t *testing.T) {
	env, out := testEnv("")
	dir := adp.NewDirectory(&devutil.Roster{Workers: devutil.SampleOrg()})
	store := devutil.NewMemStore("carla@example.com")
	report := filepath.Join(t.TempDir(), "report.csv")

	require.NoError(t, run(context.Background(), env, dir, store, options{dryRun: true, report: report}))

	assert.Empty(t, store.Created)
	assert.Contains(t, out.String(), "Would create (dry run):      4")

	b, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.Contains(t, string(b), "would-create")
	assert.Contains(t, string(b), "skipped-exists")
}

func TestRunUnknownManager(t *testing.T) {
	env, _ := testEnv("")
	dir := adp.NewDirectory(&devutil.Roster{Workers: devutil.SampleOrg()})

	err := run(context.Background(), env, dir, devutil.NewMemStore(), options{manager: "ghost@example.com"})

	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Equal(t, 3, apperr.ExitCode(err))
}

func TestRunPartialFailureExitsNonZero(t *testing.T) {
	env, _ := testEnv("")
	dir := adp.NewDirectory(&devutil.Roster{Workers: devutil.SampleOrg()})
	store := devutil.NewMemStore()
	store.FailCreate["bob@example.com"] = apperr.New(apperr.CodeValidation, "memstore", "Invalid login")

	err := run(context.Background(), env, dir, store, options{yes: true})

	require.Error(t, err)
	assert.Equal(t, 1, apperr.ExitCode(err))
	assert.Len(t, store.Created, 4)
}

func TestRunAuthFailure(t *testing.T) {
	env, _ := testEnv("")
	dir := adp.NewDirectory(&devutil.Roster{Err: apperr.New(apperr.CodeAuth, "adp", "invalid_client")})

	err := run(context.Background(), env, dir, devutil.NewMemStore(), options{yes: true})

	assert.Equal(t, 2, apperr.ExitCode(err))
}

func TestRunNoWorkers(t *testing.T) {
	env, out := testEnv("")
	dir := adp.NewDirectory(&devutil.Roster{})

	require.NoError(t, run(context.Background(), env, dir, devutil.NewMemStore(), options{}))
	assert.Contains(t, out.String(), "Nothing to sync")
}

func TestRootCmdFlags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"manager", "yes", "dry-run", "report"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
	assert.Error(t, cmd.Args(cmd, []string{"extra"}))
}
