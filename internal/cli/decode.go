package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gork-labs/paykit/pkg/models"
	"github.com/gork-labs/paykit/pkg/unions"
)

func newDecodeCommand(opts *Options) *cobra.Command {
	var (
		typeName   string
		showActive bool
	)

	cmd := &cobra.Command{
		Use:   "decode [file|-]",
		Short: "Decode and validate a JSON payload as one of the API types",
		Long: "Decode reads a JSON document, decodes it as --type, validates it and writes\n" +
			"it back in canonical form. Unions report the alternative they resolved to.\n\n" +
			"Types: " + strings.Join(models.TypeNames(), ", "),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) == 1 {
				name = args[0]
			}
			data, err := readInput(cmd.InOrStdin(), name)
			if err != nil {
				return err
			}

			v, err := decodeAs(typeName, data)
			if err != nil {
				var unknown *unions.UnknownShapeError
				if errors.As(err, &unknown) {
					fmt.Fprintln(cmd.ErrOrStderr(), unknown.Detail())
				}
				return err
			}

			if showActive {
				if err := writeActive(cmd.OutOrStdout(), v); err != nil {
					return err
				}
			}
			return writeOutput(cmd.OutOrStdout(), opts.Format, v)
		},
	}

	cmd.Flags().StringVar(&typeName, "type", "", "Type to decode the payload as")
	cmd.Flags().BoolVar(&showActive, "active", false, "List the alternative every union resolved to")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

// decodeAs decodes data into a new value of the named type and validates it.
func decodeAs(typeName string, data []byte) (any, error) {
	v, ok := models.New(typeName)
	if !ok {
		return nil, fmt.Errorf("unknown type %q", typeName)
	}
	if err := unions.Unmarshal(data, v); err != nil {
		return nil, fmt.Errorf("decode %s: %w", typeName, err)
	}
	if err := unions.ValidatePayload(v); err != nil {
		return nil, fmt.Errorf("validate %s: %w", typeName, err)
	}
	return v, nil
}

func writeActive(w io.Writer, v any) error {
	var err error
	unions.Walk(v, func(path string, u unions.Variant) {
		if err != nil {
			return
		}
		if path == "" {
			path = "."
		}
		_, err = fmt.Fprintf(w, "# %s: %s\n", path, u.Active())
	})
	return err
}
