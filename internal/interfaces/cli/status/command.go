package status

import (
	"fmt"

	"github.com/spf13/cobra"

	"guestgate/internal/application/gate"
	"guestgate/internal/interfaces/cli/bootstrap"
)

var seed bool

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show trial quota status",
		Long:  `Show the device identity, trial token, and remaining per-day quota for each gated feature.`,
		RunE:  run,
	}

	cmd.Flags().BoolVar(&seed, "seed-config", false, "Seed the default trial config on the backend if missing")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	service, _, err := bootstrap.Setup()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	service.Start(ctx)

	if seed {
		if err := service.SeedConfig(ctx); err != nil {
			return fmt.Errorf("seed config: %w", err)
		}
	}

	token := service.Token()
	fmt.Printf("device token: %s", token)
	if gate.IsFallback(token) {
		fmt.Printf(" (local fallback, not backend-issued)")
	}
	fmt.Println()

	fmt.Printf("%-10s %6s %6s %10s %7s\n", "feature", "limit", "used", "remaining", "usable")
	for _, st := range service.Status(ctx) {
		fmt.Printf("%-10s %6d %6d %10d %7v\n", st.Feature, st.Limit, st.Used, st.Remaining, st.Usable)
	}

	return nil
}
