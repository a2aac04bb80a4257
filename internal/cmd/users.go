package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/commercehq/shopctl/internal/api"
	"github.com/commercehq/shopctl/internal/guard"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user accounts (admin)",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List user accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.bootstrap(cmd.Context()); err != nil {
			return err
		}
		if err := guard.RequireAdmin(a.session.CurrentUser()); err != nil {
			return err
		}

		page, _ := cmd.Flags().GetInt("page")
		limit, _ := cmd.Flags().GetInt("limit")
		query, _ := cmd.Flags().GetString("query")

		result, err := a.client.ListUsers(cmd.Context(), api.ListParams{
			Page:  page,
			Limit: limit,
			Query: query,
		})
		if err != nil {
			return err
		}

		if len(result.Items) == 0 {
			fmt.Println("No users found.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tVERIFIED")
		for _, u := range result.Items {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\n", u.ID, u.Name, u.Email, u.Role, u.IsVerified)
		}
		w.Flush()
		fmt.Printf("\n%d users\n", result.Total)
		return nil
	},
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user account",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.bootstrap(cmd.Context()); err != nil {
			return err
		}
		if err := guard.RequireAdmin(a.session.CurrentUser()); err != nil {
			return err
		}

		input, err := userInputFromFlags(cmd, true)
		if err != nil {
			return err
		}

		u, err := a.client.CreateUser(cmd.Context(), input)
		if err != nil {
			return err
		}

		fmt.Printf("Created user %d: %s\n", u.ID, u.Email)
		return nil
	},
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a user account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.bootstrap(cmd.Context()); err != nil {
			return err
		}
		if err := guard.RequireAdmin(a.session.CurrentUser()); err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		input, err := userInputFromFlags(cmd, false)
		if err != nil {
			return err
		}

		if err := a.client.UpdateUser(cmd.Context(), id, input); err != nil {
			return err
		}

		fmt.Printf("Updated user %d\n", id)
		return nil
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.bootstrap(cmd.Context()); err != nil {
			return err
		}
		if err := guard.RequireAdmin(a.session.CurrentUser()); err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			confirmed, err := promptConfirm(fmt.Sprintf("Delete user %d?", id), false)
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Println("Aborted.")
				return nil
			}
		}

		if err := a.client.DeleteUser(cmd.Context(), id); err != nil {
			return err
		}

		fmt.Printf("Deleted user %d\n", id)
		return nil
	},
}

// userInputFromFlags builds the user payload. A password is required
// when creating; when updating an empty password keeps the current one.
func userInputFromFlags(cmd *cobra.Command, creating bool) (api.UserInput, error) {
	name, _ := cmd.Flags().GetString("name")
	email, _ := cmd.Flags().GetString("email")
	role, _ := cmd.Flags().GetString("role")
	password, _ := cmd.Flags().GetString("password")

	var err error
	if name, err = promptString("Name", name, true); err != nil {
		return api.UserInput{}, err
	}
	if email, err = promptString("Email", email, true); err != nil {
		return api.UserInput{}, err
	}
	if creating {
		if password, err = promptPassword("Password", password); err != nil {
			return api.UserInput{}, err
		}
	}

	return api.UserInput{
		Name:     name,
		Email:    email,
		Role:     role,
		Password: password,
	}, nil
}

func init() {
	usersListCmd.Flags().Int("page", 1, "page number")
	usersListCmd.Flags().Int("limit", 20, "items per page")
	usersListCmd.Flags().String("query", "", "search text")

	for _, c := range []*cobra.Command{usersCreateCmd, usersUpdateCmd} {
		c.Flags().String("name", "", "display name")
		c.Flags().String("email", "", "account email")
		c.Flags().String("role", "customer", "account role: customer or admin")
		c.Flags().String("password", "", "account password")
	}

	usersDeleteCmd.Flags().Bool("yes", false, "skip the confirmation prompt")

	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersCreateCmd)
	usersCmd.AddCommand(usersUpdateCmd)
	usersCmd.AddCommand(usersDeleteCmd)
	rootCmd.AddCommand(usersCmd)
}
