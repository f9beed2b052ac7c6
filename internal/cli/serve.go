package cli

import (
	"github.com/spf13/cobra"

	"github.com/t1nkr/releasecache/internal/server"
	"github.com/t1nkr/releasecache/pkg/observability"
)

func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the update-check HTTP service",
		Long: `Run the HTTP service answering POST /getUpdateInfo.

The registry is read on the first request and the store is loaded lazily;
both stay in memory until the process exits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if addr == "" {
				addr = a.cfg.Server.Addr
			}
			observability.NewLogHooks(c.Logger).Register()
			defer observability.Reset()

			c.Logger.Info("serving update checks",
				"addr", addr,
				"store", a.store.Location(),
				"registry", a.cfg.Registry.Path,
				"auth", a.client.Credentials().Mode())
			return server.New(a.checker, c.Logger).ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}
