package main

import (
	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the active rule snapshot",
	Long: `Print the standards, red lines, and personas a generation would load right now.
Red lines are ordered by descending severity.`,
	Args: cobra.NoArgs,
	RunE: runRules,
}

func runRules(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	rules, err := e.governance().Snapshot(cmd.Context())
	if err != nil {
		return err
	}

	return printJSON(cmd.OutOrStdout(), rules)
}
