package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the API token",
	Long:  `Register an API key, refresh its token, or inspect and clear the cached token.`,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register an API key and store its token",
	RunE:  runRegister,
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Issue a new token for a registered email",
	RunE:  runRefresh,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the cached token",
	RunE:  runStatus,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the cached token",
	RunE:  runLogout,
}

var setTokenCmd = &cobra.Command{
	Use:   "set-token <token> <expires-at>",
	Short: "Store a token obtained elsewhere (expiry in RFC 3339)",
	Args:  cobra.ExactArgs(2),
	RunE:  runSetToken,
}

var (
	authName  string
	authEmail string
)

func init() {
	authCmd.AddCommand(registerCmd)
	authCmd.AddCommand(refreshCmd)
	authCmd.AddCommand(statusCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(setTokenCmd)

	registerCmd.Flags().StringVar(&authName, "name", "", "Key name")
	registerCmd.Flags().StringVar(&authEmail, "email", "", "Email to bind the key to")
	refreshCmd.Flags().StringVar(&authEmail, "email", "", "Registered email")
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	v, _ := reader.ReadString('\n')
	return strings.TrimSpace(v)
}

func runRegister(cmd *cobra.Command, args []string) error {
	reader := bufio.NewReader(os.Stdin)
	if authName == "" {
		authName = prompt(reader, "Key name: ")
	}
	if authEmail == "" {
		authEmail = prompt(reader, "Email: ")
	}

	ctx, cancel := commandContext()
	defer cancel()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	fmt.Println("🔄 Registering API key...")
	key, err := s.client.RegisterAPIKey(ctx, authName, authEmail)
	if err != nil {
		return err
	}

	successColor.Println("✅ API key registered!")
	fmt.Printf("Key ID:  %s\nExpires: %s\n", key.ID, key.ExpiresAt)
	return nil
}

func runRefresh(cmd *cobra.Command, args []string) error {
	if authEmail == "" {
		authEmail = prompt(bufio.NewReader(os.Stdin), "Email: ")
	}

	ctx, cancel := commandContext()
	defer cancel()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	fmt.Println("🔄 Refreshing token...")
	key, err := s.client.RefreshToken(ctx, authEmail)
	if err != nil {
		return err
	}

	successColor.Println("✅ Token refreshed!")
	fmt.Printf("Expires: %s\n", key.ExpiresAt)
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	status := s.client.TokenStatus()
	fmt.Printf("API:    %s\n", s.client.BaseURL())
	fmt.Printf("Mode:   %s\n", modeLabel(s.client.IsMockMode()))

	switch {
	case !status.HasToken:
		fmt.Printf("Token:  %s\n", dimColor.Sprint("none"))
	case status.IsValid:
		fmt.Printf("Token:  %s (expires %s, in %s)\n", successColor.Sprint("valid"),
			status.ExpiresAt.Local().Format(time.RFC1123), time.Until(*status.ExpiresAt).Round(time.Minute))
	default:
		fmt.Printf("Token:  %s\n", errorColor.Sprint("expired"))
	}
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if !s.client.TokenStatus().HasToken {
		fmt.Println("No token cached.")
		return nil
	}

	if err := s.client.Logout(ctx); err != nil {
		return err
	}
	successColor.Println("✅ Token cleared.")
	return nil
}

func runSetToken(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.client.SetToken(ctx, args[0], args[1]); err != nil {
		return err
	}
	successColor.Println("✅ Token stored.")
	return nil
}
