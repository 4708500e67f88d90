package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var mockCmd = &cobra.Command{
	Use:       "mock [on|off]",
	Short:     "Show or switch mock mode",
	Long:      `With mock mode on, reads return generated data and never touch the network.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE:      runMock,
}

func runMock(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if len(args) == 0 {
		fmt.Printf("Mode: %s\n", modeLabel(s.client.IsMockMode()))
		return nil
	}

	var enabled bool
	switch args[0] {
	case "on", "true":
		enabled = true
	case "off", "false":
		enabled = false
	default:
		return fmt.Errorf("expected on or off, got %q", args[0])
	}

	if err := s.client.SetMockMode(ctx, enabled); err != nil {
		return err
	}
	successColor.Print("✅ ")
	fmt.Printf("Mode set to %s\n", modeLabel(enabled))
	return nil
}
