package chat

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"guestgate/internal/domain/trial"
	"guestgate/internal/interfaces/cli/bootstrap"
)

func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive gated guest chat",
		Long:  `Send guest chat messages through the trial gate. Each reply consumes one chat credit; the session ends when the daily quota runs out.`,
		RunE:  run,
	}
}

func run(cmd *cobra.Command, args []string) error {
	service, _, err := bootstrap.Setup()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	service.Start(ctx)

	remaining := service.Gate().Remaining(ctx, trial.FeatureChat)
	fmt.Printf("guest chat ready, %d messages left today (empty line to quit)\n", remaining)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			break
		}

		reply, result := service.Chat(ctx, false, message)
		switch result.Verdict {
		case trial.VerdictQuotaExceeded:
			fmt.Println("daily chat quota reached — sign in to keep chatting")
			return nil
		case trial.VerdictActionFailed:
			fmt.Printf("chat failed (no credit consumed): %v\n", result.Err)
		default:
			fmt.Println(reply)
		}
	}

	return scanner.Err()
}
