package updater

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// PrintBanner writes the update notification for n to w. A nil notice
// prints nothing.
func PrintBanner(w io.Writer, n *Notice) {
	if n == nil {
		return
	}
	yellow := color.New(color.FgYellow).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	fmt.Fprintf(w, "\n%s %s -> %s\n", yellow("Update available:"), n.Current, bold(n.Latest))
	fmt.Fprintf(w, "    Run `npm install -g %s` to upgrade\n\n", n.Package)
}
