package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stencil-labs/stencil/internal/branding"
	"github.com/stencil-labs/stencil/internal/config"
	"github.com/stencil-labs/stencil/internal/dispatch"
	"github.com/stencil-labs/stencil/internal/logging"
	"github.com/stencil-labs/stencil/internal/npm"
	"github.com/stencil-labs/stencil/internal/platform"
	"github.com/stencil-labs/stencil/internal/updater"
	"github.com/stencil-labs/stencil/internal/userdata"
)

// updateCheckTimeout bounds the startup registry query for a newer CLI.
const updateCheckTimeout = 5 * time.Second

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	debug    bool
	settings config.Settings
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` runs project commands that are published as registry packages.
Each command package is installed into a versioned cache on first use, kept
up to date on later runs, and executed in its own process.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: preflight,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&debug, "debug", false, "Enable debug logging")
	flags.String("target-path", "", "Run commands from a local package directory instead of the cache")
	flags.String("registry", "", "Registry base URL")
	_ = viper.BindPFlag(config.KeyTargetPath, flags.Lookup("target-path"))
	_ = viper.BindPFlag(config.KeyRegistry, flags.Lookup("registry"))

	for _, c := range dispatch.Commands() {
		rootCmd.AddCommand(newDispatchCommand(c))
	}
}

// preflight runs before every command: it checks the environment, loads
// configuration and prints the update banner.
func preflight(cmd *cobra.Command, _ []string) error {
	if _, err := userdata.CheckUserHome(); err != nil {
		return err
	}
	if _, err := userdata.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	s, err := config.Load()
	if err != nil {
		return err
	}
	settings = s
	logging.Configure(os.Stderr, settings.LogLevel, debug)

	log.WithFields(log.Fields{"version": buildVersion, "cache_home": settings.CacheHome}).Debug("starting " + branding.CLIName())
	if settings.Direct() {
		log.WithField("target_path", settings.TargetPath).Debug("direct mode")
	}
	if platform.IsPrivileged() {
		log.Warnf("running as root: files written to %s will not be writable by your user", settings.CacheHome)
	}

	// Commands that manage their own state skip the banner.
	switch cmd.Name() {
	case "config", "get", "set", "version":
		return nil
	}
	checkForUpdate(cmd.Context())
	return nil
}

func checkForUpdate(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, updateCheckTimeout)
	defer cancel()

	client := npm.New(npm.WithRegistry(dispatch.RegistryURL(settings)))
	u := updater.New(branding.PackageName(), buildVersion, client, updater.WithCacheDir(settings.UpdateCheckDir()))
	notice, err := u.Check(ctx)
	if err != nil {
		log.WithError(err).Debug("update check failed")
		return
	}
	updater.PrintBanner(os.Stderr, notice)
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.ExecuteContext(context.Background())
}
