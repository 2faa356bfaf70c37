// Package commands contains the avrogen command tree.
package commands

import (
	"github.com/spf13/cobra"
	"github.com/tencent-go/avrogen/app"
	"github.com/tencent-go/avrogen/errx"
)

type state struct {
	cfg app.Config
}

// NewRootCmd creates the root command. Configuration is read from the environment
// before any subcommand runs; flags override it.
func NewRootCmd() *cobra.Command {
	s := &state{}
	rootCmd := &cobra.Command{
		Use:           "avrogen",
		Short:         "Generate Avro schemas from data-transfer classes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Load()
			if err != nil {
				return errx.Validation.WithCause(err).Err()
			}
			s.cfg = cfg
			return nil
		},
	}

	registerGenCmd(rootCmd, s)
	registerDocCmd(rootCmd, s)
	registerServeCmd(rootCmd, s)

	return rootCmd
}

// Report renders a command failure the way users see it.
func Report(err error) string {
	return errx.Conversion.WithCause(err).Err().Error()
}
