package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sambabib/dupcheck/pkg/analyzer"
)

// checkCmd analyzes a single lockfile given by path
var checkCmd = &cobra.Command{
	Use:   "check <lockfile>",
	Short: "Find duplicated packages in a single lockfile",
	Long:  `Read a lockfile of any name, or standard input when the path is "-", and report every package resolved to more than one version.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(".")
		if err != nil {
			return err
		}
		applyFlags(cmd, cfg)
		a := newAnalyzer(cfg)

		var result *analyzer.Result
		if args[0] == "-" {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read standard input: %w", err)
			}
			result, err = a.AnalyzeText(string(data), "-")
			if err != nil {
				return err
			}
		} else {
			result, err = a.AnalyzeFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
		}
		return render(cmd, cfg, result.Items)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, table, json or sarif")
	checkCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the report to a file instead of stdout")
	checkCmd.Flags().BoolVar(&requireResolved, "require-resolved", false, "Skip entries whose version is only a dependency specifier")
}
