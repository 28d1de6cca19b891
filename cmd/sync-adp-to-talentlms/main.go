package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"adp-lms-sync/internal/app"
	"adp-lms-sync/internal/apperr"
	"adp-lms-sync/internal/domain"
	"adp-lms-sync/internal/export"
	"adp-lms-sync/internal/providers"
	"adp-lms-sync/internal/sync"
)

const toolName = "sync-adp-to-talentlms"

type options struct {
	manager string
	yes     bool
	dryRun  bool
	report  string
}

func main() {
	os.Exit(app.Execute(newRootCmd()))
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   toolName,
		Short: "Create TalentLMS accounts for active ADP employees that do not have one",
		Example: `  # Sync all active employees (asks for confirmation)
  sync-adp-to-talentlms

  # Sync only employees under a specific manager
  sync-adp-to-talentlms --manager manager@company.com

  # Show what would be created
  sync-adp-to-talentlms --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := app.Setup(cmd.Context(), toolName)
			if err != nil {
				return err
			}
			env.In, env.Out = cmd.InOrStdin(), cmd.OutOrStdout()

			ctx, cancel := env.Context(cmd.Context())
			defer cancel()

			dir, err := env.ADPDirectory()
			if err != nil {
				return err
			}
			store, err := env.TalentLMSStore()
			if err != nil {
				return err
			}
			return run(ctx, env, dir, store, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.manager, "manager", "", "only sync employees under this manager (email, name, or worker ID)")
	f.BoolVarP(&opts.yes, "yes", "y", false, "skip the confirmation prompt for a full-roster sync")
	f.BoolVar(&opts.dryRun, "dry-run", false, "report what would be created without creating accounts")
	f.StringVar(&opts.report, "report", "", "also write per-worker results to this CSV file")
	return cmd
}

func run(ctx context.Context, env *app.Env, src providers.WorkerSource, store providers.AccountStore, opts options) error {
	out := env.Out
	log := env.Log

	workers, err := targets(ctx, env, src, opts.manager)
	if err != nil {
		return err
	}
	if len(workers) == 0 {
		fmt.Fprintln(out, "No active workers found. Nothing to sync.")
		return nil
	}

	// A full-roster sync touches every employee; preview and confirm first.
	if opts.manager == "" && !opts.yes && !opts.dryRun {
		proceed, err := confirmFullSync(ctx, env, workers, store)
		if err != nil || !proceed {
			return err
		}
	}

	fmt.Fprintln(out, "\nStarting sync...")
	rec := sync.NewReconciler(store, sync.Options{
		DryRun:             opts.dryRun,
		OnboardingCourseID: env.Config.TalentLMS.OnboardingCourseID,
	}, log)
	rep, syncErr := rec.Sync(ctx, workers)

	if err := rep.Summary(out); err != nil {
		return err
	}
	if opts.report != "" {
		if err := writeReport(opts.report, rep); err != nil {
			return err
		}
		log.Info().Str("file", opts.report).Msg("report written")
	}

	if syncErr != nil {
		return syncErr
	}
	if rep.Failed > 0 {
		return apperr.Newf(apperr.CodeUnknown, "sync", "%d of %d workers failed", rep.Failed, rep.Processed())
	}
	return nil
}

func targets(ctx context.Context, env *app.Env, src providers.WorkerSource, manager string) ([]domain.Worker, error) {
	fmt.Fprintln(env.Out, "Fetching workers from ADP...")
	if manager == "" {
		workers, err := src.ListActiveWorkers(ctx)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(env.Out, "Found %d active workers in ADP\n", len(workers))
		return workers, nil
	}

	m, err := src.FindWorker(ctx, manager)
	if err != nil {
		return nil, fmt.Errorf("could not find manager matching %q: %w", manager, err)
	}
	fmt.Fprintf(env.Out, "Filtering to employees under %s...\n", m.DisplayName())

	workers, err := src.ListWorkersUnderManager(ctx, manager)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(env.Out, "Found %d active workers under this manager\n", len(workers))
	return workers, nil
}

func confirmFullSync(ctx context.Context, env *app.Env, workers []domain.Worker, store providers.AccountStore) (bool, error) {
	fmt.Fprintln(env.Out, "Fetching all TalentLMS users...")
	accounts, err := store.ListAccounts(ctx)
	if err != nil {
		return false, err
	}
	fmt.Fprintf(env.Out, "Found %d TalentLMS users\n", len(accounts))

	counts := sync.Count(sync.Plan(workers, accounts))
	fmt.Fprintf(env.Out, "%d already have accounts, %d need one, %d cannot be synced.\n",
		counts[sync.DecisionHasAccount], counts[sync.DecisionNeedsAccount], counts[sync.DecisionInvalid])

	n := counts[sync.DecisionNeedsAccount]
	if n == 0 {
		fmt.Fprintln(env.Out, "Every active worker already has an account.")
		return false, nil
	}

	ok, err := app.Confirm(env.In, env.Out, fmt.Sprintf("Create %d TalentLMS accounts for the full roster?", n))
	if err != nil {
		return false, err
	}
	if !ok {
		fmt.Fprintln(env.Out, "Aborted, no accounts created.")
	}
	return ok, nil
}

func writeReport(path string, rep sync.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report %s: %w", path, err)
	}
	if err := export.WriteSyncReportCSV(f, rep); err != nil {
		f.Close()
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return f.Close()
}
