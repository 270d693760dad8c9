package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAccountsCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List configured bank accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := loadProject(dir)
			if err != nil {
				return err
			}

			all := proj.accounts.All()
			if len(all) == 0 {
				fmt.Println("No bank accounts configured. Add them to bankfeed.yaml.")
				return nil
			}
			for _, a := range all {
				fmt.Printf("%-12s %-24s %s ****%s\n", a.ID, a.Name, a.Type, a.LastFour)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "project directory")

	return cmd
}
