package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sambabib/dupcheck/pkg/analyzer"
	"github.com/sambabib/dupcheck/pkg/config"
	"github.com/sambabib/dupcheck/pkg/lockfile"
	"github.com/sambabib/dupcheck/pkg/logger"
	"github.com/sambabib/dupcheck/pkg/output"
	"github.com/sambabib/dupcheck/pkg/overrides"
)

var (
	analyzePath     string
	format          string // output format: text, table, json or sarif
	outputFile      string
	applyOverrides  bool
	requireResolved bool
)

// analyzeCmd represents the analyze subcommand
var analyzeCmd = &cobra.Command{
	Use:   "analyze [dir...]",
	Short: "Find duplicated packages in project lockfiles",
	Long: `Find the lockfile of each project directory (pnpm-lock.yaml, package-lock.json,
npm-shrinkwrap.json, yarn.lock, bun.lock or bun.lockb, in that order) and report every
package resolved to more than one version. Directories are analyzed concurrently.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dirs := args
		if len(dirs) == 0 {
			dirs = []string{analyzePath}
		}

		cfg, err := loadConfig(dirs[0])
		if err != nil {
			return err
		}
		applyFlags(cmd, cfg)
		a := newAnalyzer(cfg)

		results := make([]*analyzer.Result, len(dirs))
		g, ctx := errgroup.WithContext(cmd.Context())
		for i, dir := range dirs {
			i, dir := i, dir
			g.Go(func() error {
				result, err := a.Analyze(ctx, dir)
				if errors.Is(err, analyzer.ErrNoLockfile) {
					logger.Debugf("%v", err)
					return nil
				}
				if err != nil {
					return fmt.Errorf("%s: %w", dir, err)
				}
				results[i] = result
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		var items []analyzer.ReportItem
		found := false
		for _, r := range results {
			if r == nil {
				continue
			}
			found = true
			logger.Debugf("%s: %d duplicated packages", r.Lockfile, len(r.Items))
			items = append(items, r.Items...)
		}
		if !found {
			fmt.Fprintln(cmd.OutOrStdout(), "Not found any lockfile here.")
			return nil
		}

		if err := render(cmd, cfg, items); err != nil {
			return err
		}

		if cfg.Overrides.Apply {
			for _, r := range results {
				if r != nil {
					applyResultOverrides(cmd.OutOrStdout(), r)
				}
			}
		}
		return nil
	},
}

// loadConfig loads --config when given, otherwise searches dir and its parents
func loadConfig(dir string) (*config.Config, error) {
	if configPath != "" {
		return config.LoadConfig(configPath)
	}
	return config.FindAndLoadConfig(dir)
}

// applyFlags lets explicitly set flags win over the config file
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format = format
	}
	if flags.Changed("output") {
		cfg.Output.File = outputFile
	}
	if flags.Changed("apply-overrides") {
		cfg.Overrides.Apply = applyOverrides
	}
	if flags.Changed("require-resolved") && requireResolved {
		cfg.SpecifierPolicy = lockfile.RequireResolved.String()
	}
}

func newAnalyzer(cfg *config.Config) *analyzer.Analyzer {
	a := analyzer.NewAnalyzer(cfg.BunCommand)
	a.Ignore = cfg.IsPackageIgnored
	a.Options = []lockfile.Option{lockfile.WithSpecifierPolicy(cfg.Policy())}
	return a
}

// render writes the report to stdout, or to the configured output file
func render(cmd *cobra.Command, cfg *config.Config, items []analyzer.ReportItem) error {
	if cfg.Output.File == "" {
		return output.Write(cmd.OutOrStdout(), cfg.Output.Format, items, Version)
	}
	var buf bytes.Buffer
	if err := output.Write(&buf, cfg.Output.Format, items, Version); err != nil {
		return err
	}
	if err := os.WriteFile(cfg.Output.File, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// applyResultOverrides pins the duplicates of r and prints what changed
func applyResultOverrides(w io.Writer, r *analyzer.Result) {
	target := r.Manager.OverrideTarget(r.Dir)
	changes, err := overrides.Apply(target, r.Report)
	switch {
	case errors.Is(err, overrides.ErrNothingToOverride):
		fmt.Fprintln(w, "Nothing to override.")
	case err != nil:
		logger.Errorf("failed to write overrides to %s: %v", target, err)
	case len(changes) == 0:
		fmt.Fprintf(w, "Overrides in %s are up to date.\n", target.File)
	default:
		for _, c := range changes {
			fmt.Fprintf(w, "Add override: %s\n", c)
		}
	}
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&analyzePath, "path", "p", ".", "Path to project directory to analyze")
	analyzeCmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, table, json or sarif")
	analyzeCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the report to a file instead of stdout")
	analyzeCmd.Flags().BoolVar(&applyOverrides, "apply-overrides", false, "Pin every duplicate to its greatest version in the project's override settings")
	analyzeCmd.Flags().BoolVar(&requireResolved, "require-resolved", false, "Skip entries whose version is only a dependency specifier")
}
