package admin

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/nstepanova/onboard/internal/models"
)

// WriteUserTable renders the user listing as an aligned text table.
func WriteUserTable(w io.Writer, users []models.UserSummary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEMAIL")
	for _, u := range users {
		fmt.Fprintf(tw, "%d\t%s\n", u.ID, u.Email)
	}
	return tw.Flush()
}
