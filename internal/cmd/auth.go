package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the shop API",
	Long: `Log in with an email and password. The session token is stored
under the state directory and reused by later commands.

Examples:
  shopctl auth login
  shopctl auth login --email admin@example.com --password secret`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		if email, err = promptString("Email", email, true); err != nil {
			return err
		}
		if password, err = promptPassword("Password", password); err != nil {
			return err
		}

		if err := a.session.Login(cmd.Context(), email, password); err != nil {
			return err
		}

		user := a.session.CurrentUser()
		fmt.Printf("Logged in as %s (%s)\n", user.Name, user.Email)
		return nil
	},
}

var authSignupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account and log in",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		if name, err = promptString("Name", name, true); err != nil {
			return err
		}
		if email, err = promptString("Email", email, true); err != nil {
			return err
		}
		if password, err = promptPassword("Password", password); err != nil {
			return err
		}

		if err := a.session.Signup(cmd.Context(), email, password, name); err != nil {
			return err
		}

		fmt.Printf("Account created. Logged in as %s\n", email)
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and discard the stored token",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		a.session.Logout()
		fmt.Println("Logged out.")
		return nil
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		if err := a.bootstrap(cmd.Context()); err != nil {
			return err
		}

		user := a.session.CurrentUser()
		if user == nil {
			fmt.Println("Not logged in.")
			fmt.Println("Use 'shopctl auth login' to authenticate.")
			return nil
		}

		fmt.Println("Logged in")
		fmt.Printf("Name:  %s\n", user.Name)
		fmt.Printf("Email: %s\n", user.Email)
		fmt.Printf("Role:  %s\n", user.Role)
		return nil
	},
}

func init() {
	authLoginCmd.Flags().String("email", "", "account email")
	authLoginCmd.Flags().String("password", "", "account password")

	authSignupCmd.Flags().String("name", "", "display name")
	authSignupCmd.Flags().String("email", "", "account email")
	authSignupCmd.Flags().String("password", "", "account password")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authSignupCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}
