package cli

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/grachmannico95/incident-replay/internal/domain"
)

// NewRootCmd creates the root incidentgen command.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "incidentgen",
		Short: "Reproduce the payment routing incident dataset",
		Long: `incidentgen regenerates the seeded incident dataset outside the replay service.
The same seed always yields byte-identical output, so a dataset attached to an
exported report can be rebuilt and audited.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newGenerateCmd(),
		newSummaryCmd(),
	)

	return root
}

func validateSeed(seed int64) error {
	if seed < 0 || seed > math.MaxUint32 {
		return fmt.Errorf("%w: %d (want 0..%d)", domain.ErrInvalidSeed, seed, uint32(math.MaxUint32))
	}
	return nil
}
