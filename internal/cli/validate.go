package cli

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newValidateCommand(_ *Options) *cobra.Command {
	var (
		typeName string
		jobs     int
	)

	cmd := &cobra.Command{
		Use:   "validate --type T file...",
		Short: "Validate JSON payload files against one of the API types",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := validateFiles(cmd.Context(), cmd.InOrStdin(), typeName, args, jobs)

			failed := 0
			for i, err := range results {
				if err != nil {
					failed++
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", args[i], err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", args[i])
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed validation", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&typeName, "type", "", "Type to validate the files as")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "Number of files validated concurrently")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

// validateFiles decodes every file concurrently and returns one result per
// file, in argument order. "-" reads stdin.
func validateFiles(ctx context.Context, stdin io.Reader, typeName string, files []string, jobs int) []error {
	if ctx == nil {
		ctx = context.Background()
	}
	if jobs < 1 {
		jobs = 1
	}

	results := make([]error, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = err
				return nil
			}
			data, err := readInput(stdin, file)
			if err != nil {
				results[i] = err
				return nil
			}
			_, results[i] = decodeAs(typeName, data)
			log.Debugw("validated", "file", file, "err", results[i])
			return nil
		})
	}
	_ = g.Wait()
	return results
}
