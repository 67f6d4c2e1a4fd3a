package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sambabib/dupcheck/pkg/logger"
)

// Version is set during build using ldflags
var Version = "dev"

var (
	verbose    bool
	configPath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dupcheck",
	Short: "Finds packages resolved to more than one version in a lockfile",
	Long: `dupcheck reads the lockfile of an npm, pnpm, Yarn or Bun project and lists every package
that is installed in more than one version. It can also pin each duplicate to its greatest
version through the package manager's override settings.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(verbose)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: .dupcheck.yaml in the project or its parents)")
}
