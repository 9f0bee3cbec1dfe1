package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"tally/internal/bootstrap"
	activitydto "tally/internal/modules/activity/dto"
	ingestdto "tally/internal/modules/ingest/dto"
	metricsout "tally/internal/modules/metrics/adapter/out"
	metricsdto "tally/internal/modules/metrics/dto"
	"tally/internal/platform/config"
	apperrors "tally/internal/platform/errors"
	"tally/internal/platform/logging"
	uiapp "tally/internal/ui/app"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, apperrors.ErrInvalidInput) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// rootFlags are shared by every subcommand.
type rootFlags struct {
	configPath string
	logLevel   string
	logBundle  string
	claudeDir  string
	codexDir   string
}

// bundle resolves the log bundle directory: flag, then environment, then
// config file.
func (f *rootFlags) bundle(cfg config.Config) string {
	if f.logBundle != "" {
		return config.ExpandHome(f.logBundle)
	}
	if env := os.Getenv("TALLY_LOG_BUNDLE"); env != "" {
		return config.ExpandHome(env)
	}
	return cfg.LogBundle
}

func (f *rootFlags) loadApp() (*bootstrap.App, config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, config.Config{}, err
	}
	log := logging.New(f.logLevel)
	return bootstrap.New(cfg, log), cfg, nil
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "tally",
		Short:         "AI-assisted work time and productivity analyzer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default ~/.config/tally/config.yaml)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn", "log level: trace|debug|info|warn|error")
	root.PersistentFlags().StringVar(&flags.logBundle, "log-bundle", "", "directory of per-machine log copies")
	root.PersistentFlags().StringVar(&flags.claudeDir, "claude-dir", "", "claude log root (default ~/.claude)")
	root.PersistentFlags().StringVar(&flags.codexDir, "codex-dir", "", "codex log root (default ~/.codex)")

	root.AddCommand(newCompareCmd(flags))
	root.AddCommand(newHoursCmd(flags))
	root.AddCommand(newCoverageCmd(flags))
	root.AddCommand(newSyncCmd(flags))
	root.AddCommand(newRepoCmd(flags))
	root.AddCommand(newTUICmd(flags))
	return root
}

func newCompareCmd(flags *rootFlags) *cobra.Command {
	var author, since, hubSince, project, csvPath, projectsCSV, dbPath string
	var history, combined, verbose bool

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare productivity across tooling-adoption buckets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cfg, err := flags.loadApp()
			if err != nil {
				return err
			}

			mode := metricsdto.ModeBucket
			if history {
				mode = metricsdto.ModeDayBucket
				if combined {
					mode = metricsdto.ModeDay
				}
			}

			out, err := app.MetricsCLI.Compare(context.Background(), metricsdto.CompareInput{
				ClaudeDir: flags.claudeDir,
				CodexDir:  flags.codexDir,
				Bundle:    flags.bundle(cfg),
				Author:    author,
				Since:     since,
				HubSince:  hubSince,
				Project:   project,
				Mode:      mode,
				DBPath:    dbPath,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if mode == metricsdto.ModeBucket {
				printBucketTable(w, out.Buckets)
			} else {
				printDayTable(w, out.Days, mode == metricsdto.ModeDayBucket)
			}
			if verbose {
				fmt.Fprintf(w, "\n%d sessions aggregated (skipped: %d outside coverage, %d before --since, %d before --hub-since, %d without repo)\n",
					out.Sessions, out.Skipped.OutsideCoverage, out.Skipped.BeforeSince,
					out.Skipped.BeforeHubSince, out.Skipped.NoRepo)
			}

			if csvPath != "" {
				if err := writeCompareCSV(csvPath, out, mode); err != nil {
					return err
				}
			}
			if projectsCSV != "" {
				if err := withFile(projectsCSV, func(f *os.File) error {
					return metricsout.WriteProjectCSV(f, out.Projects)
				}); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&author, "author", "", "git author regexp for commit matching")
	cmd.Flags().StringVar(&since, "since", "", "ignore sessions before this day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&hubSince, "hub-since", "", "ignore hub-repo sessions before this day")
	cmd.Flags().StringVar(&project, "project", "", "restrict to one project name")
	cmd.Flags().BoolVar(&history, "history", false, "daily breakdown instead of bucket summary")
	cmd.Flags().BoolVar(&combined, "combined", false, "with --history, combine buckets per day")
	cmd.Flags().StringVar(&csvPath, "csv", "", "write rows as CSV to this file")
	cmd.Flags().StringVar(&projectsCSV, "projects-csv", "", "write per-project rows as CSV to this file")
	cmd.Flags().StringVar(&dbPath, "db", "", "project the run into this sqlite database")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "print skip counters")
	_ = cmd.MarkFlagRequired("author")
	return cmd
}

func newHoursCmd(flags *rootFlags) *cobra.Command {
	var project, csvPath string

	cmd := &cobra.Command{
		Use:   "hours",
		Short: "Daily session and sitting hours",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cfg, err := flags.loadApp()
			if err != nil {
				return err
			}
			ctx := context.Background()

			collected, err := app.IngestCLI.Collect(ctx, flags.claudeDir, flags.codexDir, flags.bundle(cfg))
			if err != nil {
				return err
			}
			out, err := app.ActivityCLI.DailyHours(ctx, filterEvents(cfg, collected.Events), project)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "day\tsessions\thours\tsittings\tsitting hours")
			for _, r := range out.Rows {
				fmt.Fprintf(tw, "%s\t%d\t%.2f\t%d\t%.2f\n",
					r.Day, r.Sessions, r.SessionHours, r.Sittings, r.SittingHours)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if csvPath != "" {
				return withFile(csvPath, func(f *os.File) error {
					return writeHoursCSV(f, out.Rows)
				})
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&project, "project", "", "restrict sessions to one project name")
	cmd.Flags().StringVar(&csvPath, "csv", "", "write rows as CSV to this file")
	return cmd
}

func newCoverageCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "coverage",
		Short: "Show trustworthy date windows per log source",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cfg, err := flags.loadApp()
			if err != nil {
				return err
			}
			ctx := context.Background()

			collected, err := app.IngestCLI.Collect(ctx, flags.claudeDir, flags.codexDir, flags.bundle(cfg))
			if err != nil {
				return err
			}
			out, err := app.CoverageCLI.Compute(ctx, collected.Locations)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, src := range out.Sources {
				fmt.Fprintf(w, "%s:\n", src.Source)
				for _, win := range src.Windows {
					fmt.Fprintf(w, "  %s .. %s\n", win.Start, win.End)
				}
			}
			fmt.Fprintln(w, "effective:")
			if len(out.Effective) == 0 {
				fmt.Fprintln(w, "  (no overlap, day filtering disabled)")
				return nil
			}
			for _, win := range out.Effective {
				fmt.Fprintf(w, "  %s .. %s\n", win.Start, win.End)
			}
			return nil
		},
	}
}

func newSyncCmd(flags *rootFlags) *cobra.Command {
	var machine string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Copy local logs into the log bundle",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cfg, err := flags.loadApp()
			if err != nil {
				return err
			}
			out, err := app.IngestCLI.Sync(context.Background(), flags.bundle(cfg), machine)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, pair := range out.Synced {
				fmt.Fprintln(w, pair)
			}
			fmt.Fprintf(w, "synced %d source trees for machine %s\n", len(out.Synced), out.Machine)
			return nil
		},
	}
	cmd.Flags().StringVar(&machine, "machine-name", "", "bundle subdirectory (default: hostname)")
	return cmd
}

func newRepoCmd(flags *rootFlags) *cobra.Command {
	var author, since, until, csvPath string
	var outliers bool

	cmd := &cobra.Command{
		Use:   "repo <path>...",
		Short: "Commit line stats rolled up by day",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, _, err := flags.loadApp()
			if err != nil {
				return err
			}

			paths := make([]string, 0, len(args))
			for _, arg := range args {
				paths = append(paths, config.ExpandHome(arg))
			}
			out, err := app.MetricsCLI.RepoStats(context.Background(), metricsdto.RepoStatsInput{
				Paths:    paths,
				Author:   author,
				Since:    since,
				Until:    until,
				Outliers: outliers,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "repo\tday\tcommits\tadded\tdeleted\tspan h\test h")
			for _, r := range out.Days {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%.2f\t%.2f\n",
					r.Repo, r.Day, r.Commits, r.Added, r.Deleted, r.SpanHours, r.EstimatedHours)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if csvPath != "" {
				return withFile(csvPath, func(f *os.File) error {
					return metricsout.WriteRepoDayCSV(f, out.Days)
				})
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&author, "author", "", "git author regexp")
	cmd.Flags().StringVar(&since, "since", "", "first day to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&until, "until", "", "last day to include (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&outliers, "outliers", false, "exclude outlier commits from sums")
	cmd.Flags().StringVar(&csvPath, "csv", "", "write rows as CSV to this file")
	return cmd
}

func newTUICmd(flags *rootFlags) *cobra.Command {
	var author, since, hubSince, project, dbPath string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse daily metrics interactively",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, cfg, err := flags.loadApp()
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(app, uiapp.Options{
				Author:    author,
				Since:     since,
				HubSince:  hubSince,
				Project:   project,
				DBPath:    dbPath,
				ClaudeDir: flags.claudeDir,
				CodexDir:  flags.codexDir,
				Bundle:    flags.bundle(cfg),
			})
		},
	}
	cmd.Flags().StringVar(&author, "author", "", "git author regexp for commit matching")
	cmd.Flags().StringVar(&since, "since", "", "ignore sessions before this day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&hubSince, "hub-since", "", "ignore hub-repo sessions before this day")
	cmd.Flags().StringVar(&project, "project", "", "restrict to one project name")
	cmd.Flags().StringVar(&dbPath, "db", "", "load the latest projection from this sqlite database")
	return cmd
}

func filterEvents(cfg config.Config, events []ingestdto.Event) []ingestdto.Event {
	out := make([]ingestdto.Event, 0, len(events))
	for _, e := range events {
		mapped, keep := cfg.MapPath(e.Project)
		if !keep {
			continue
		}
		e.Project = mapped
		out = append(out, e)
	}
	return out
}

func printBucketTable(w io.Writer, rows []metricsdto.BucketRow) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "bucket\tsessions\thours\tcommits\tdelta\tdelta/h\tcommits/h")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%d\t%d\t%.1f\t%.2f\n",
			r.Bucket, r.Sessions, r.Hours, r.Commits, r.Delta, r.DeltaPerHour, r.CommitsPerHour)
	}
	_ = tw.Flush()
}

func printDayTable(w io.Writer, rows []metricsdto.DayRow, withBucket bool) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	if withBucket {
		fmt.Fprintln(tw, "day\tbucket\tsessions\thours\tcommits\tdelta\tdelta/h\tcommits/h")
	} else {
		fmt.Fprintln(tw, "day\tsessions\thours\tcommits\tdelta\tdelta/h\tcommits/h")
	}
	for _, r := range rows {
		if withBucket {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f\t%d\t%d\t%.1f\t%.2f\n",
				r.Day, r.Bucket, r.Sessions, r.Hours, r.Commits, r.Delta, r.DeltaPerHour, r.CommitsPerHour)
		} else {
			fmt.Fprintf(tw, "%s\t%d\t%.2f\t%d\t%d\t%.1f\t%.2f\n",
				r.Day, r.Sessions, r.Hours, r.Commits, r.Delta, r.DeltaPerHour, r.CommitsPerHour)
		}
	}
	_ = tw.Flush()
}

func writeCompareCSV(path string, out metricsdto.CompareOutput, mode string) error {
	return withFile(path, func(f *os.File) error {
		if mode == metricsdto.ModeBucket {
			return metricsout.WriteBucketCSV(f, out.Buckets)
		}
		return metricsout.WriteDayCSV(f, out.Days, mode == metricsdto.ModeDayBucket)
	})
}

func writeHoursCSV(f *os.File, rows []activitydto.DayHours) error {
	cw := csv.NewWriter(f)
	if err := cw.Write([]string{"day", "sessions", "session_hours", "sittings", "sitting_hours"}); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.Day,
			strconv.Itoa(r.Sessions),
			strconv.FormatFloat(r.SessionHours, 'f', 2, 64),
			strconv.Itoa(r.Sittings),
			strconv.FormatFloat(r.SittingHours, 'f', 2, 64),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func withFile(path string, fn func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := fn(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
