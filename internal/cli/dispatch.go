package cli

import (
	"github.com/spf13/cobra"
	"github.com/stencil-labs/stencil/internal/dispatch"
	"github.com/stencil-labs/stencil/pkg/command"
)

func newDispatchCommand(c dispatch.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   c.Use,
		Short: c.Short,
		Long:  c.Short + ".\n\nRuns the " + c.Package + " package, installing or updating it first.",
		RunE: func(cmd *cobra.Command, args []string) error {
			d := dispatch.New(settings, dispatch.WithHostVersion(buildVersion))
			_, err := d.Run(cmd.Context(), c.Name, args, command.Options(cmd.LocalNonPersistentFlags()))
			return err
		},
	}
	if c.Flags != nil {
		c.Flags(cmd.Flags())
	}
	return cmd
}
