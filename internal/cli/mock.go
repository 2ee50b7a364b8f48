package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gork-labs/paykit/internal/mockserver"
)

func newMockCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mock",
		Short: "In-memory mock of the payments API",
	}

	var (
		addr  string
		token string
	)
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the mock API until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := mockserver.New(mockserver.WithToken(token))
			return srv.ListenAndServe(ctx, addr)
		},
	}
	serve.Flags().StringVar(&addr, "addr", "127.0.0.1:8085", "Listen address")
	serve.Flags().StringVar(&token, "token", "", "Bearer token the mock accepts (default any)")

	cmd.AddCommand(serve)
	return cmd
}
