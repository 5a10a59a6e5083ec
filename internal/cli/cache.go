package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/stencil-labs/stencil/internal/dispatch"
	"github.com/stencil-labs/stencil/internal/pkgcache"
	"golang.org/x/sync/errgroup"
)

// warmConcurrency bounds parallel installs during `cache warm`.
const warmConcurrency = 4

var cacheListJSON bool

func init() {
	cacheListCmd.Flags().BoolVar(&cacheListJSON, "json", false, "Output in JSON format")
	cacheCmd.AddCommand(cacheListCmd, cacheCleanCmd, cacheWarmCmd)
	rootCmd.AddCommand(cacheCmd)
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and maintain the package cache",
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached command packages",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := pkgcache.List(settings.StoreDir())
		if err != nil {
			return err
		}
		if cacheListJSON {
			if entries == nil {
				entries = []pkgcache.Entry{}
			}
			out, err := json.MarshalIndent(entries, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling cache entries: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		}
		printEntries(cmd.OutOrStdout(), entries)
		return nil
	},
}

var cacheCleanCmd = &cobra.Command{
	Use:   "clean [package]",
	Short: "Remove cached packages, or every version of one package",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		removed, err := pkgcache.Remove(settings.StoreDir(), name)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached package(s)\n", removed)
		return nil
	},
}

var cacheWarmCmd = &cobra.Command{
	Use:   "warm",
	Short: "Install or update every command package ahead of time",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if settings.Direct() {
			return fmt.Errorf("cache warm has nothing to do when a target path is set")
		}
		d := dispatch.New(settings, dispatch.WithHostVersion(buildVersion), dispatch.WithProgress(nil))
		return warmCache(cmd.Context(), cmd.OutOrStdout(), d, dispatch.Commands())
	},
}

// warmCache resolves every command concurrently and reports each result.
func warmCache(ctx context.Context, w io.Writer, d *dispatch.Dispatcher, commands []dispatch.Command) error {
	ok := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(warmConcurrency)
	for _, c := range commands {
		g.Go(func() error {
			pkg, err := d.Resolve(gctx, c)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			fmt.Fprintf(w, "%s %s@%s\n", ok.Render("✓"), pkg.Name(), pkg.Version())
			return nil
		})
	}
	return g.Wait()
}

func printEntries(w io.Writer, entries []pkgcache.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No packages cached yet.")
		return
	}

	header := lipgloss.NewStyle().Bold(true)
	faint := lipgloss.NewStyle().Faint(true)
	nameWidth, versionWidth := len("PACKAGE"), len("VERSION")
	for _, e := range entries {
		nameWidth = max(nameWidth, len(e.Name))
		versionWidth = max(versionWidth, len(e.Version))
	}
	nameCol := lipgloss.NewStyle().Width(nameWidth + 2)
	versionCol := lipgloss.NewStyle().Width(versionWidth + 2)

	fmt.Fprintln(w, header.Render(nameCol.Render("PACKAGE")+versionCol.Render("VERSION")+"INSTALLED"))
	for _, e := range entries {
		fmt.Fprintln(w, nameCol.Render(e.Name)+versionCol.Render(e.Version)+faint.Render(e.InstalledAt.Local().Format("2006-01-02 15:04")))
	}
}
