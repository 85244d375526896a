package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/governance"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Upsert standards, red lines, and personas from YAML",
	Long: `Seed the rule store. Without --file the embedded baseline rule set is used.
Records are matched by term, rule content, and persona name; matches are updated
and reactivated.

Examples:
  brief seed
  brief seed --file rules.yaml`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "YAML seed file (defaults to the embedded rule set)")
}

func readSeed(path string) (*governance.Seed, error) {
	if path == "" {
		return governance.DefaultSeed()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed: %w", err)
	}
	defer f.Close()

	return governance.LoadSeed(f)
}

func runSeed(cmd *cobra.Command, args []string) error {
	seed, err := readSeed(seedFile)
	if err != nil {
		return err
	}

	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	report, err := e.governance().Seed(cmd.Context(), seed)
	if err != nil {
		return err
	}

	return printJSON(cmd.OutOrStdout(), report)
}
