package commands

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/catalogtools/eav-import/cmd/eavimport/ui"
)

var (
	version = "0.1.0"

	cfgFile string
	verbose bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "eavimport",
	Short: "Bulk importer for attribute-driven catalog data",
	Long: `eavimport streams CSV source files through an observer pipeline that
resolves store scopes and attribute sets against a bulk-loaded reference
data snapshot and hands the finished entities to a persistence backend.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		ui.Init(noColor)
		return nil
	},
}

func init() {
	rootCmd.Version = version
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
