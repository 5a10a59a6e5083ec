package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/stencil-labs/stencil/internal/config"
)

func init() {
	configCmd.AddCommand(configSetCmd, configGetCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long: `Read and write settings stored at ` + config.FilePath() + `.

Every key can also be set with an environment variable, e.g. STENCIL_REGISTRY.
Keys: ` + strings.Join(config.Keys(), ", "),
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := config.Set(key, value); err != nil {
			var unknown *config.UnknownKeyError
			if errors.As(err, &unknown) {
				return fmt.Errorf("%w (known keys: %s)", err, strings.Join(config.Keys(), ", "))
			}
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !config.IsKey(args[0]) {
			return &config.UnknownKeyError{Key: args[0]}
		}
		fmt.Fprintln(cmd.OutOrStdout(), config.Get(args[0]))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), config.FilePath())
		return nil
	},
}
