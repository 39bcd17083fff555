package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pable/go-hockey-leaders/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Browse leader charts and JSON over HTTP",
	Long: `Serves the stored datasets:
  /                               index of stats
  /api/{kind}/leaders/{stat}?n=N  leader JSON
  /charts/{kind}/{stat}.{svg|png|html|pdf}  chart rendered on demand`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveAddr != "" {
		cfg.Serve.Addr = serveAddr
	}
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	return server.New(db, cfg).ListenAndServe(cmd.Context(), cfg.Serve.Addr)
}
