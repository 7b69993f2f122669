package commands

import (
	"fmt"

	"storefront/db"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Bring the schema to the current version and seed an empty catalog",
	Long: `Open the store and apply the schema version this build expects.

A version change drops and recreates every table, so existing data is lost.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, database, err := setup()
		if err != nil {
			return err
		}
		defer database.Close()

		version, err := db.StoredVersion(database.GetDB())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", version)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
