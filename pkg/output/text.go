package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/sambabib/dupcheck/pkg/analyzer"
)

// PrintTextReport prints one name@version line per duplicated version
func PrintTextReport(w io.Writer, reports []analyzer.ReportItem) {
	for _, r := range reports {
		for _, v := range r.Versions {
			fmt.Fprintf(w, "%s@%s\n", r.Name, v)
		}
	}
}

// PrintTableReport prints the report items in a tabular text format
func PrintTableReport(w io.Writer, reports []analyzer.ReportItem) {
	const versionsLimit = 60 // Max characters for versions column

	// Initialize tabwriter
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0) // minwidth, tabwidth, padding, padchar, flags

	// Print header
	fmt.Fprintln(tw, "NAME\tCOUNT\tVERSIONS\tMANAGER")
	fmt.Fprintln(tw, "----\t-----\t--------\t-------")

	// Print data rows
	for _, r := range reports {
		versions := strings.Join(r.Versions, ", ")
		if len(versions) > versionsLimit {
			versions = versions[:versionsLimit-3] + "..."
		}

		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n",
			r.Name,
			len(r.Versions),
			versions,
			r.Manager,
		)
	}

	// Flush the writer to print the table
	tw.Flush()
}
