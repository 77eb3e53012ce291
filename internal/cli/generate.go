package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/grachmannico95/incident-replay/internal/generator"
)

func newGenerateCmd() *cobra.Command {
	var (
		seed         int64
		output       string
		compact      bool
		skipBaseline bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the generated dataset as JSON",
		Long: `Runs the scenario generator for a seed and writes transactions, baseline
transactions and the incident with its routing events as one JSON document.`,
		Example: `  incidentgen generate --seed 42 > dataset.json
  incidentgen generate --seed 7 --output seed7.json --no-baseline`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateSeed(seed); err != nil {
				return err
			}

			data := generator.Generate(seed)
			if skipBaseline {
				data.BaselineTransactions = nil
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating file: %w", err)
				}
				defer f.Close()
				w = f
			}

			enc := json.NewEncoder(w)
			if !compact {
				enc.SetIndent("", "  ")
			}
			if err := enc.Encode(data); err != nil {
				return fmt.Errorf("writing dataset: %w", err)
			}

			if output != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Generated dataset for seed %d to %s\n", seed, output)
				fmt.Fprintf(cmd.ErrOrStderr(), "  Transactions: %d\n", len(data.Transactions))
				fmt.Fprintf(cmd.ErrOrStderr(), "  Baseline:     %d\n", len(data.BaselineTransactions))
				fmt.Fprintf(cmd.ErrOrStderr(), "  Events:       %d\n", len(data.Incident.Events))
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", generator.DefaultSeed, "generator seed (0..4294967295)")
	cmd.Flags().StringVar(&output, "output", "", "output file path (default stdout)")
	cmd.Flags().BoolVar(&compact, "compact", false, "write JSON without indentation")
	cmd.Flags().BoolVar(&skipBaseline, "no-baseline", false, "omit the 24h baseline stream")

	return cmd
}
