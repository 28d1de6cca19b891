package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"adp-lms-sync/internal/app"
	"adp-lms-sync/internal/apperr"
	"adp-lms-sync/internal/providers"
)

const toolName = "delete-talentlms-user"

func main() {
	os.Exit(app.Execute(newRootCmd()))
}

func newRootCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     toolName + " <email>",
		Short:   "Permanently delete a TalentLMS user by email",
		Example: "  delete-talentlms-user former.employee@company.com --yes",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.Setup(cmd.Context(), toolName)
			if err != nil {
				return err
			}
			env.In, env.Out = cmd.InOrStdin(), cmd.OutOrStdout()

			ctx, cancel := env.Context(cmd.Context())
			defer cancel()

			store, err := env.TalentLMSStore()
			if err != nil {
				return err
			}
			return run(ctx, env, store, args[0], yes)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking for confirmation")
	return cmd
}

// run reports a missing user as not found instead of failing on it; the
// returned error still carries the not-found code for the exit status.
func run(ctx context.Context, env *app.Env, store providers.AccountStore, email string, yes bool) error {
	acc, err := store.FindUserByEmail(ctx, email)
	if errors.Is(err, apperr.ErrNotFound) {
		fmt.Fprintf(env.Out, "No TalentLMS user found with email %s\n", email)
		return err
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(env.Out, "Found TalentLMS user %s: %s %s <%s>\n", acc.ID, acc.FirstName, acc.LastName, acc.Email)
	if !yes {
		ok, err := app.Confirm(env.In, env.Out, "Delete this user permanently?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(env.Out, "Aborted, user not deleted.")
			return nil
		}
	}

	if _, err := store.DeleteUserByEmail(ctx, email); err != nil {
		return err
	}
	env.Log.Info().Str("email", acc.Email).Str("account_id", acc.ID).Msg("talentlms user deleted")
	fmt.Fprintf(env.Out, "✓ Deleted TalentLMS user %s (%s)\n", acc.ID, acc.Email)
	return nil
}
