package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"adp-lms-sync/internal/app"
	"adp-lms-sync/internal/apperr"
	"adp-lms-sync/internal/domain"
	"adp-lms-sync/internal/providers"
	"adp-lms-sync/internal/sync"
)

const toolName = "sync-single-employee"

func main() {
	os.Exit(app.Execute(newRootCmd()))
}

func newRootCmd() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   toolName + " <email|name|worker-id>",
		Short: "Create a TalentLMS account for one ADP employee",
		Example: `  sync-single-employee jane.doe@company.com
  sync-single-employee "Jane Doe" --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.Setup(cmd.Context(), toolName)
			if err != nil {
				return err
			}
			env.Out = cmd.OutOrStdout()

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
			return run(ctx, env, dir, store, args[0], dryRun)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would happen without creating the account")
	return cmd
}

func run(ctx context.Context, env *app.Env, src providers.WorkerSource, store providers.AccountStore, ident string, dryRun bool) error {
	w, err := src.FindWorker(ctx, ident)
	if err != nil {
		return err
	}
	name := w.DisplayName()
	if !w.Active() {
		return apperr.Newf(apperr.CodeValidation, "sync", "%s is not an active employee (status %s)", name, w.Status)
	}

	rec := sync.NewReconciler(store, sync.Options{
		DryRun:             dryRun,
		OnboardingCourseID: env.Config.TalentLMS.OnboardingCourseID,
	}, env.Log)
	rep, err := rec.Sync(ctx, []domain.Worker{w})
	if err != nil {
		return err
	}

	res := rep.Results[0]
	switch res.Outcome {
	case sync.OutcomeCreated:
		fmt.Fprintf(env.Out, "✓ %s (%s): created TalentLMS user ID %s\n", name, w.Email, res.AccountID)
		if course := env.Config.TalentLMS.OnboardingCourseID; course != "" && res.Warning == "" {
			fmt.Fprintf(env.Out, "  ✓ Enrolled in course %s\n", course)
		}
		if res.Warning != "" {
			fmt.Fprintf(env.Out, "  ⚠ %s\n", res.Warning)
		}
	case sync.OutcomeWouldCreate:
		fmt.Fprintf(env.Out, "→ %s (%s): would create a TalentLMS account (dry run)\n", name, w.Email)
	case sync.OutcomeExists:
		fmt.Fprintf(env.Out, "✓ %s (%s): already has TalentLMS account %s\n", name, w.Email, res.AccountID)
	case sync.OutcomeFailed:
		fmt.Fprintf(env.Out, "✗ %s (%s): %s\n", name, w.Email, res.Reason)
		return res.Err
	}
	return nil
}
