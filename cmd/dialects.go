package cmd

import (
	"fmt"

	"github.com/gaurav-prasanna/bbpipe/core/dialect"
	"github.com/spf13/cobra"
)

var dialectsCmd = &cobra.Command{
	Use:   "dialects",
	Short: "List the supported forum dialects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range dialect.Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dialectsCmd)
}
