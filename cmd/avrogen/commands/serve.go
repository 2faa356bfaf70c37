package commands

import (
	"github.com/spf13/cobra"
	"github.com/tencent-go/avrogen/server"
)

func registerServeCmd(parent *cobra.Command, s *state) {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the converter over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = s.cfg.Addr
			}
			handler := server.New(s.cfg.Converter(), server.Options{Policy: s.cfg.Policy()})
			if err := server.Run(cmd.Context(), addr, handler); err != nil {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address (default $AVROGEN_ADDR)")
	parent.AddCommand(cmd)
}
