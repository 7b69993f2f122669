package commands

import (
	"errors"
	"fmt"

	"storefront/db"
	"storefront/session"

	"github.com/spf13/cobra"
)

var confirmReset bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop all data, recreate the schema and reseed the catalog",
	Long: `Drop every table, recreate them, seed the default catalog and sign out.

Examples:
  storefront reset --yes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmReset {
			return errors.New("refusing to reset without --yes")
		}
		cfg, log, database, err := setup()
		if err != nil {
			return err
		}
		defer database.Close()

		gdb := database.GetDB()
		if err := db.ResetSchema(gdb, db.SchemaVersion, log); err != nil {
			return err
		}
		if err := db.Seed(gdb, log); err != nil {
			return err
		}

		store, err := session.NewStore(cfg)
		if err != nil {
			return err
		}
		if err := store.Clear(cmd.Context()); err != nil {
			log.WithError(err).Warn("could not clear session")
		}
		fmt.Fprintln(cmd.OutOrStdout(), "store reset")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&confirmReset, "yes", false, "Confirm dropping all data")
	rootCmd.AddCommand(resetCmd)
}
