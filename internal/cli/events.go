package cli

import (
	"github.com/spf13/cobra"

	"github.com/gork-labs/paykit/pkg/models"
)

func newEventsCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Ingest usage events",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "ingest [file|-]",
		Short: "Ingest an EventsIngest JSON document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var body models.EventsIngest
			if err := readJSONArg(cmd, args, &body); err != nil {
				return err
			}
			c, err := opts.newClient()
			if err != nil {
				return err
			}
			resp, err := c.Events.Ingest(cmd.Context(), body)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), opts.Format, resp)
		},
	})
	return cmd
}
