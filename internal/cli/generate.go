package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gork-labs/paykit/internal/generator"
)

func newGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Code generation utilities",
	}
	cmd.AddCommand(newGenerateVariantsCommand())
	return cmd
}

func newGenerateVariantsCommand() *cobra.Command {
	var (
		variantsPath string
		outputPath   string
	)

	cmd := &cobra.Command{
		Use:   "variants",
		Short: "Generate union types from a variants.yml file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := generator.LoadConfig(variantsPath)
			if err != nil {
				return err
			}
			gen := generator.NewVariantGenerator(cfg.Package, cfg.Imports...)
			if err := gen.GenerateFile(cfg.Variants, outputPath); err != nil {
				return fmt.Errorf("generate variants: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d variants to %s\n", len(cfg.Variants), outputPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&variantsPath, "variants", "variants.yml", "Path to the variants.yml file")
	cmd.Flags().StringVar(&outputPath, "output", "variants_gen.go", "Path of the generated Go file")
	return cmd
}
