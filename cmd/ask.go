package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abureyko/shipping-agent/internal/agent"
	"github.com/abureyko/shipping-agent/internal/shared/cmdutils"
)

var askMessage string

var exitCommands = map[string]bool{
	"exit": true, "quit": true, "/exit": true, "/quit": true, ":q": true,
}

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Ask the shipping assistant (single message or interactive)",
	Args:  cobra.NoArgs,
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askMessage, "message", "m", "", "Message to send (omit for interactive mode)")
}

func runAsk(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	container, err := buildContainer(cfg)
	if err != nil {
		return err
	}
	orch := container.Orchestrator()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if askMessage != "" {
		return askOnce(ctx, orch, askMessage)
	}

	fmt.Printf("%s Interactive mode (type exit or Ctrl+C to quit)\n\n", logo)
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			fmt.Println("\nGoodbye!")
			return nil
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if exitCommands[strings.ToLower(input)] {
			fmt.Println("Goodbye!")
			return nil
		}
		if err := askOnce(ctx, orch, input); err != nil {
			cmdutils.PrintError(err)
		}
		if ctx.Err() != nil {
			fmt.Println("\nGoodbye!")
			return nil
		}
	}
}

func askOnce(ctx context.Context, orch *agent.Orchestrator, text string) error {
	resp, err := orch.HandleUserRequest(ctx, text)
	if err != nil {
		return err
	}
	return cmdutils.PrintJSON(resp)
}
