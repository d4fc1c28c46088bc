package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dmitrijs2005/softhub/internal/client/models"
)

// HumanSize formats n bytes with a binary unit.
func HumanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// WriteTable prints one row per item in the given order.
func WriteTable(w io.Writer, items []models.Software) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tVERSION\tSIZE\tUPLOADED\tFILE")
	for _, s := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			s.Name, s.Version, HumanSize(s.Size), s.UploadedAt.Local().Format("2006-01-02 15:04"), s.ServerFilename)
	}
	return tw.Flush()
}
