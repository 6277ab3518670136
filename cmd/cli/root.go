package cli

import (
	"fmt"
	"os"

	"github.com/flowbaker/copysmith/internal/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "copysmith",
		Short: "Batch product description generator",
		Long: `Copysmith reads product tables (csv, tsv, xlsx), asks a language model for a short and a
long description of every product and writes the tables back with both columns filled.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
	}

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("config", "", "Path to a config file (default: copysmith_config.yaml in ., ./config or $HOME/.copysmith)")

	rootCmd.AddCommand(NewGenerateCommand())
	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewLanguagesCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command, requireAPIKey bool) (*config.Config, error) {
	configFile, _ := cmd.Flags().GetString("config")

	return config.LoadConfig(config.LoadOptions{
		ConfigFile:    configFile,
		RequireAPIKey: requireAPIKey,
	})
}
