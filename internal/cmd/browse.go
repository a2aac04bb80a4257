package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/commercehq/shopctl/internal/views"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Open the full-screen shop interface",
	Long: `Open the interactive full-screen interface: browse products,
manage the cart, place orders and, as an admin, manage the catalog and
user accounts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		app := views.NewApp(&views.Deps{
			Session: a.session,
			Client:  a.client,
			Cache:   a.cache,
			Notify:  a.notify,
			Logger:  a.logger,
		})

		program := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
		_, err = program.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
