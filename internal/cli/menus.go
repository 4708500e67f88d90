package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/existflow/angple/internal/model"
)

var menusCmd = &cobra.Command{
	Use:   "menus",
	Short: "Show the sidebar menu tree",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()

		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		menus, err := s.client.GetMenus(ctx)
		if err != nil {
			return fmt.Errorf("failed to load menus: %w", err)
		}
		printMenus(menus)
		return nil
	},
}

func printMenus(items []model.MenuItem) {
	for _, m := range items {
		fmt.Printf("%s%s %s\n", strings.Repeat("  ", m.Depth), labelColor.Sprint(m.Title), dimColor.Sprint(m.URL))
		printMenus(m.Children)
	}
}
