package main

import (
	"os"

	"github.com/spf13/cobra"

	"guestgate/internal/interfaces/cli/chat"
	"guestgate/internal/interfaces/cli/status"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "guestgate",
		Short: "Guestgate - guest trial quota gate",
		Long:  `Guestgate meters guest access to AI chat, calls, and reactions under a per-device daily quota, staying usable while offline or when the backend is down.`,
	}

	rootCmd.AddCommand(
		status.NewCommand(),
		chat.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
