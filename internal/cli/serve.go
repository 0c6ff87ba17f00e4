package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridkit/internal/server"
	"github.com/matzehuels/gridkit/pkg/editor"
	"github.com/matzehuels/gridkit/pkg/session"
)

func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP editing API",
		Long: `Run the HTTP editing API.

Every page opened through POST /sessions gets its own editor. Sessions
expire after server.session_ttl of inactivity; pages are persisted to the
configured store with POST /sessions/{id}/save.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.cfg.Server.Addr
			}

			palette, err := c.palette()
			if err != nil {
				return err
			}
			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			sessions := session.NewManager(
				func() *editor.Editor { return c.newEditor(palette) },
				session.WithTTL(c.cfg.Server.SessionTTL),
				session.WithLogger(c.Logger),
			)
			c.Logger.Info("starting server",
				"addr", addr,
				"store", c.cfg.Store.Backend,
				"types", len(palette.Types()),
				"session_ttl", sessions.TTL(),
			)
			return server.New(sessions, st, palette, c.Logger).ListenAndServe(ctx, addr, c.cfg.Server.CleanupInterval)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}
