package output

import (
	"fmt"
	"io"

	"github.com/sambabib/dupcheck/pkg/analyzer"
)

// Formats lists the supported output formats
var Formats = []string{"text", "table", "json", "sarif"}

// Write renders reports to w in the given format. toolVersion is recorded
// in SARIF output.
func Write(w io.Writer, format string, reports []analyzer.ReportItem, toolVersion string) error {
	switch format {
	case "", "text":
		PrintTextReport(w, reports)
		return nil
	case "table":
		PrintTableReport(w, reports)
		return nil
	case "json":
		out, err := GenerateJSONReport(reports)
		if err != nil {
			return fmt.Errorf("failed to marshal report to JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case "sarif":
		out, err := GenerateSarifReport(reports, toolVersion)
		if err != nil {
			return fmt.Errorf("failed to marshal report to SARIF: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	}
	return fmt.Errorf("unknown output format %q (want one of %v)", format, Formats)
}
