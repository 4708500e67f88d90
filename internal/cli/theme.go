package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/existflow/angple/internal/theme"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Show or switch the site theme",
	Long: `Show the active theme, list the themes, or switch to another one.

Examples:
  angple theme              # Show the active theme
  angple theme ls           # List all themes
  angple theme set modern   # Switch to the modern theme
  angple theme system --dark`,
	RunE: runThemeShow,
}

var themeLsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List all themes",
	RunE:    runThemeList,
}

var themeSetCmd = &cobra.Command{
	Use:       "set <id>",
	Short:     "Switch the active theme",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{theme.Default, theme.Modern, theme.Classic},
	RunE:      runThemeSet,
}

var themeSystemCmd = &cobra.Command{
	Use:   "system",
	Short: "Switch to the theme matching the OS colour scheme",
	RunE:  runThemeSystem,
}

var themeDark bool

func init() {
	themeCmd.AddCommand(themeLsCmd)
	themeCmd.AddCommand(themeSetCmd)
	themeCmd.AddCommand(themeSystemCmd)

	themeSystemCmd.Flags().BoolVar(&themeDark, "dark", false, "The OS prefers a dark colour scheme")
}

func runThemeShow(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	t := s.themes.Current()
	fmt.Printf("🎨 %s %s\n", labelColor.Sprint(t.Name), dimColor.Sprintf("(%s)", t.ID))
	fmt.Println(t.Description)
	fmt.Println(dimColor.Sprint(theme.LinkFor(t.ID).HTML()))
	return nil
}

func runThemeList(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	current := s.themes.Current().ID
	table := newTable("", "ID", "Name", "Description", "Version")
	for _, t := range theme.Available() {
		marker := ""
		if t.ID == current {
			marker = "●"
		}
		table.Append([]string{marker, t.ID, t.Name, t.Description, t.Version})
	}
	table.Render()
	return nil
}

func switchTheme(id string) error {
	ctx, cancel := commandContext()
	defer cancel()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.themes.Switch(ctx, id); err != nil {
		return err
	}
	successColor.Printf("✅ Theme switched to %s\n", s.themes.Current().Name)
	return nil
}

func runThemeSet(cmd *cobra.Command, args []string) error {
	return switchTheme(args[0])
}

func runThemeSystem(cmd *cobra.Command, args []string) error {
	return switchTheme(theme.DetectSystemTheme(themeDark))
}
