package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kompaksatyabuana/kompak/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "kompak",
	Short: "English quiz for police cadet candidates",
	Long: "Kompak Satya Buana serves a timed English quiz over HTTP and runs it in the terminal.\n" +
		"Without a subcommand the quiz starts against the embedded question bank.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuiz(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (overrides "+config.EnvConfigPath+" env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn, error")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves the configuration: defaults, then the YAML file from
// --config or the environment, then persistent flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		if _, err := config.ParseLevel(level); err != nil {
			return config.Config{}, err
		}
		cfg.Log.Level = level
	}
	return cfg, nil
}
