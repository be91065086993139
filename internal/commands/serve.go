package commands

import (
	"github.com/spf13/cobra"

	"github.com/smartspend-dev/spendcsv/internal/server"
)

func newServeCommand(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the importer over HTTP",
		Args:  cobra.NoArgs,
		Annotations: map[string]string{
			annotationDotenv: "true",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			return runServe(cmd, a)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")

	return cmd
}

func runServe(cmd *cobra.Command, a *app) error {
	p, err := a.pipeline()
	if err != nil {
		return err
	}
	h := server.NewHandler(p, a.cfg.Categories, a.cfg.Server.MaxUploadBytes(), a.logger)
	engine := server.NewEngine(a.cfg.Server, h)
	return server.Run(cmd.Context(), a.cfg.Server.Addr, engine, a.logger)
}
