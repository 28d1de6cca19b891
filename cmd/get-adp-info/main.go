package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"adp-lms-sync/internal/app"
	"adp-lms-sync/internal/apperr"
	"adp-lms-sync/internal/domain"
	"adp-lms-sync/internal/export"
	"adp-lms-sync/internal/orgchart"
	"adp-lms-sync/internal/sftpclient"
)

const toolName = "get-adp-info"

type options struct {
	workers      bool
	orgChart     bool
	exportPath   string
	upload       bool
	withAccounts bool
}

type directory interface {
	Roster(ctx context.Context) ([]domain.Worker, error)
	Hierarchy(ctx context.Context) (*orgchart.Hierarchy, error)
}

type accountLister interface {
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

type uploadFunc func(ctx context.Context, localPath string) (string, error)

func main() {
	os.Exit(app.Execute(newRootCmd()))
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   toolName,
		Short: "Inspect the ADP roster: worker counts, org chart, CSV export",
		Example: `  get-adp-info --get_workers
  get-adp-info --org_chart
  get-adp-info --org_chart manager@company.com
  get-adp-info --export roster.csv --with-accounts --upload`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.validate(args)
		},
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

			switch {
			case opts.workers:
				return printWorkers(ctx, env, dir)
			case opts.orgChart:
				manager := ""
				if len(args) == 1 {
					manager = args[0]
				}
				return printOrgChart(ctx, env, dir, manager)
			default:
				var accounts accountLister
				if opts.withAccounts {
					store, err := env.TalentLMSStore()
					if err != nil {
						return err
					}
					accounts = store
				}
				var upload uploadFunc
				if opts.upload {
					if err := env.Config.SFTP.Validate(); err != nil {
						return err
					}
					cfg := sftpclient.FromConfig(env.Config.SFTP)
					upload = func(ctx context.Context, p string) (string, error) {
						return sftpclient.UploadFile(ctx, cfg, p, filepath.Base(p))
					}
				}
				return exportRoster(ctx, env, dir, accounts, opts.exportPath, upload)
			}
		},
	}

	f := cmd.Flags()
	f.BoolVar(&opts.workers, "get_workers", false, "print active/terminated counts and the breakdown by role")
	f.BoolVar(&opts.orgChart, "org_chart", false, "print the org chart, or the part under the manager given as argument")
	f.StringVar(&opts.exportPath, "export", "", "write the roster to this CSV file")
	f.BoolVar(&opts.upload, "upload", false, "upload the exported CSV over SFTP")
	f.BoolVar(&opts.withAccounts, "with-accounts", false, "add a column telling whether each worker has a TalentLMS account")
	cmd.MarkFlagsOneRequired("get_workers", "org_chart", "export")
	cmd.MarkFlagsMutuallyExclusive("get_workers", "org_chart", "export")
	return cmd
}

// validate rejects arguments and flags that the selected mode would ignore.
func (o options) validate(args []string) error {
	if len(args) > 0 && !o.orgChart {
		return apperr.Newf(apperr.CodeValidation, toolName, "unexpected argument %q: only --org_chart takes a manager", args[0])
	}
	if o.exportPath == "" && (o.upload || o.withAccounts) {
		return apperr.New(apperr.CodeValidation, toolName, "--upload and --with-accounts require --export")
	}
	return nil
}

func printWorkers(ctx context.Context, env *app.Env, dir directory) error {
	roster, err := dir.Roster(ctx)
	if err != nil {
		return err
	}
	return orgchart.ComputeStats(roster).Write(env.Out)
}

func printOrgChart(ctx context.Context, env *app.Env, dir directory, manager string) error {
	h, err := dir.Hierarchy(ctx)
	if err != nil {
		return err
	}
	if manager == "" {
		return h.Render(env.Out)
	}
	return h.RenderFrom(env.Out, manager)
}

func exportRoster(ctx context.Context, env *app.Env, dir directory, accounts accountLister, path string, upload uploadFunc) error {
	roster, err := dir.Roster(ctx)
	if err != nil {
		return err
	}

	var existing []domain.Account
	if accounts != nil {
		if existing, err = accounts.ListAccounts(ctx); err != nil {
			return err
		}
		if existing == nil {
			existing = []domain.Account{}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := export.WriteRosterCSV(f, roster, existing); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "Wrote %d workers to %s\n", len(roster), path)

	if upload == nil {
		return nil
	}
	remote, err := upload(ctx, path)
	if err != nil {
		return err
	}
	env.Log.Info().Str("remote", remote).Msg("roster uploaded")
	fmt.Fprintf(env.Out, "Uploaded to %s\n", remote)
	return nil
}
