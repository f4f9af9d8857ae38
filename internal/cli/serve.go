package cli

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/twodo/internal/adapters/httpserver"
	"github.com/example/twodo/internal/wire"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Host the task store over HTTP",
		Long: `Serve the local task store over HTTP so other machines can sync
against it. Point their configs at this address via store_url.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := httpserver.NewServer(wire.TaskStore()).Handler(os.Stderr)

			fmt.Printf("✓ Serving task store on %s\n", addr)
			return http.ListenAndServe(addr, handler)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	return cmd
}
