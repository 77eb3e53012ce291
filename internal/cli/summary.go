package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/grachmannico95/incident-replay/internal/domain"
	"github.com/grachmannico95/incident-replay/internal/generator"
	"github.com/grachmannico95/incident-replay/internal/pipeline"
	"github.com/grachmannico95/incident-replay/pkg/format"
)

func newSummaryCmd() *cobra.Command {
	var seed int64

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print phase, processor, country and method distributions",
		Example: `  incidentgen summary
  incidentgen summary --seed 1337`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateSeed(seed); err != nil {
				return err
			}

			writeSummary(cmd.OutOrStdout(), generator.Generate(seed))
			return nil
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", generator.DefaultSeed, "generator seed (0..4294967295)")

	return cmd
}

type phaseRow struct {
	volume     int
	authorized int
}

func writeSummary(w io.Writer, data domain.GeneratedData) {
	txs := data.Transactions
	authorized := 0
	for _, tx := range txs {
		if tx.Authorized {
			authorized++
		}
	}

	fmt.Fprintf(w, "Seed:         %d\n", data.Seed)
	fmt.Fprintf(w, "Incident:     %s (starts %s)\n", data.Incident.ID, format.TimeLabel(data.Incident.StartTime))
	fmt.Fprintf(w, "Transactions: %d (baseline %d)\n", len(txs), len(data.BaselineTransactions))
	fmt.Fprintf(w, "Auth rate:    %s\n", format.Percent(ratio(authorized, len(txs))))

	phases := make(map[domain.Phase]*phaseRow, len(generator.Phases))
	for _, p := range generator.Phases {
		phases[p.Phase] = &phaseRow{}
	}
	for _, tx := range txs {
		if row, ok := phases[tx.Phase]; ok {
			row.volume++
			if tx.Authorized {
				row.authorized++
			}
		}
	}

	fmt.Fprintf(w, "\n%-16s %-13s %8s %10s\n", "PHASE", "WINDOW", "VOLUME", "AUTH RATE")
	for _, p := range generator.Phases {
		row := phases[p.Phase]
		window := format.TimeLabel(generator.MinutesAfterBase(float64(p.StartMin))) + "-" +
			format.TimeLabel(generator.MinutesAfterBase(float64(p.EndMin)))
		fmt.Fprintf(w, "%-16s %-13s %8d %10s\n", p.Phase, window, row.volume, format.Percent(ratio(row.authorized, row.volume)))
	}

	fmt.Fprintf(w, "\n%-12s %-8s %8s %8s %10s\n", "PROCESSOR", "ROLE", "VOLUME", "SHARE", "AUTH RATE")
	for _, p := range pipeline.ProcessorSummaries(txs, 0) {
		fmt.Fprintf(w, "%-12s %-8s %8d %8s %10s\n", p.Label, p.Role, p.Volume, format.Percent(p.VolumeShare), format.Percent(p.AuthRate))
	}

	fmt.Fprintf(w, "\n%-8s %8s %10s %10s\n", "COUNTRY", "VOLUME", "AUTH RATE", "BASELINE")
	for _, c := range pipeline.CountryBreakdown(txs) {
		fmt.Fprintf(w, "%-8s %8d %10s %10s\n", c.Country, c.Volume, format.Percent(c.AuthRate), format.Percent(c.Baseline))
	}

	fmt.Fprintf(w, "\n%-12s %8s %10s\n", "METHOD", "VOLUME", "AUTH RATE")
	for _, m := range pipeline.MethodBreakdown(txs) {
		fmt.Fprintf(w, "%-12s %8d %10s\n", m.Name, m.Volume, format.Percent(m.AuthRate))
	}
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
