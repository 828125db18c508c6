// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "go-banca-uno",
	Short: "GoBancaUno is the account-opening backend for Banca Uno",
	Long: `GoBancaUno is the backend service for the Banca Uno account-opening
workflow. Advisors submit account-opening requests for clients and
operations directors review, approve or reject them.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
