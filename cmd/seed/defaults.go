package main

import (
	"fmt"

	"github.com/ikkim/storefeed/internal/db"
	"github.com/spf13/cobra"
)

var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Insert the starter catalog when no products exist",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		inserted, err := db.SeedDefaultProducts(db.GetDB())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Inserted %d products\n", inserted)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(defaultsCmd)
}
