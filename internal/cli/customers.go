package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gork-labs/paykit/pkg/client"
	"github.com/gork-labs/paykit/pkg/models"
	"github.com/gork-labs/paykit/pkg/unions"
)

func newCustomersCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customers",
		Short: "Manage customers",
	}
	cmd.AddCommand(
		newCustomersListCommand(opts),
		newCustomersGetCommand(opts),
		newCustomersCreateCommand(opts),
		newCustomersDeleteCommand(opts),
	)
	return cmd
}

func newCustomersListCommand(opts *Options) *cobra.Command {
	var (
		params client.ListParams
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List customers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.newClient()
			if err != nil {
				return err
			}
			if !all {
				page, err := c.Customers.List(cmd.Context(), params)
				if err != nil {
					return err
				}
				return writeOutput(cmd.OutOrStdout(), opts.Format, page)
			}
			items, err := c.Customers.Pager(params).All(cmd.Context())
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), opts.Format, items)
		},
	}

	cmd.Flags().IntVar(&params.Page, "page", 0, "Page number")
	cmd.Flags().IntVar(&params.Limit, "limit", 0, "Page size")
	cmd.Flags().BoolVar(&all, "all", false, "Fetch every page starting at --page")
	return cmd
}

func newCustomersGetCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Get a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.newClient()
			if err != nil {
				return err
			}
			customer, err := c.Customers.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), opts.Format, customer)
		},
	}
}

func newCustomersCreateCommand(opts *Options) *cobra.Command {
	var (
		email      string
		name       string
		externalID string
		metadata   []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a customer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			body := models.CustomerCreate{Email: email}
			if name != "" {
				body.Name = &name
			}
			if externalID != "" {
				body.ExternalID = &externalID
			}
			if len(metadata) > 0 {
				md, err := parseMetadata(metadata)
				if err != nil {
					return err
				}
				body.Metadata = md
			}

			c, err := opts.newClient()
			if err != nil {
				return err
			}
			customer, err := c.Customers.Create(cmd.Context(), body)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), opts.Format, customer)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Customer email")
	cmd.Flags().StringVar(&name, "name", "", "Customer name")
	cmd.Flags().StringVar(&externalID, "external-id", "", "ID of the customer in your system")
	cmd.Flags().StringArrayVar(&metadata, "metadata", nil, "Metadata entry as key=value, repeatable")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newCustomersDeleteCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.newClient()
			if err != nil {
				return err
			}
			if err := c.Customers.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			log.Infow("deleted customer", "id", args[0])
			return nil
		},
	}
}

// parseMetadata parses key=value entries. true, false and numbers keep
// their type, everything else is stored as a string.
func parseMetadata(entries []string) (models.Metadata, error) {
	md := make(models.Metadata, len(entries))
	for _, entry := range entries {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid metadata %q: expected key=value", entry)
		}
		switch value {
		case "true", "false":
			md[key] = models.MetadataValueFromBoolean(value == "true")
			continue
		}
		if isNumber(value) {
			md[key] = models.MetadataValueFromNumber(json.Number(value))
			continue
		}
		md[key] = models.MetadataValueFromString(value)
	}
	return md, nil
}

// isNumber reports whether s is a JSON number literal. The literal is kept
// as typed so large integers survive.
func isNumber(s string) bool {
	b := []byte(s)
	return unions.ShapeOf(b) == unions.ShapeNumber && json.Valid(b)
}
