package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gork-labs/paykit/pkg/client"
	"github.com/gork-labs/paykit/pkg/models"
	"github.com/gork-labs/paykit/pkg/unions"
)

func newMetersCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meters",
		Short: "Manage usage meters",
	}
	cmd.AddCommand(newMetersListCommand(opts), newMetersCreateCommand(opts))
	return cmd
}

func newMetersListCommand(opts *Options) *cobra.Command {
	var params client.ListParams

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List meters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.newClient()
			if err != nil {
				return err
			}
			page, err := c.Meters.List(cmd.Context(), params)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), opts.Format, page)
		},
	}

	cmd.Flags().IntVar(&params.Page, "page", 0, "Page number")
	cmd.Flags().IntVar(&params.Limit, "limit", 0, "Page size")
	return cmd
}

func newMetersCreateCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "create [file|-]",
		Short: "Create a meter from a MeterCreate JSON document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var body models.MeterCreate
			if err := readJSONArg(cmd, args, &body); err != nil {
				return err
			}
			c, err := opts.newClient()
			if err != nil {
				return err
			}
			meter, err := c.Meters.Create(cmd.Context(), body)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), opts.Format, meter)
		},
	}
}

// readJSONArg decodes the file named by the optional first argument, or stdin.
func readJSONArg(cmd *cobra.Command, args []string, v any) error {
	var name string
	if len(args) > 0 {
		name = args[0]
	}
	data, err := readInput(cmd.InOrStdin(), name)
	if err != nil {
		return err
	}
	if err := unions.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode input: %w", err)
	}
	return nil
}
