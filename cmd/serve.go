package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kompaksatyabuana/kompak/internal/logging"
	"github.com/kompaksatyabuana/kompak/internal/questions"
	"github.com/kompaksatyabuana/kompak/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the landing page and the question API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.Server.Addr, _ = cmd.Flags().GetString("addr")
		}
		if cmd.Flags().Changed("bank") {
			cfg.Server.BankPath, _ = cmd.Flags().GetString("bank")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger, closer, err := logging.FromConfig("kompak", cfg.Log, os.Stderr)
		if err != nil {
			return err
		}
		defer closer.Close()

		bank, err := loadServeBank(cfg.Server.BankPath)
		if err != nil {
			return err
		}
		logger.Info("question bank loaded", "origin", bank.Origin(), "questions", bank.Len())

		handler, err := server.NewHandler(server.Config{
			Bank:   bank,
			Logger: logger.Named("http"),
		})
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return server.Run(ctx, cfg.Server.Addr, handler, cfg.Server.ShutdownTimeout, logger, nil)
	},
}

// loadServeBank loads the bank to serve. An empty bank is refused.
func loadServeBank(path string) (*questions.Bank, error) {
	bank, err := questions.LoadBank(path)
	if err != nil {
		return nil, fmt.Errorf("load question bank: %w", err)
	}
	if bank.Len() == 0 {
		return nil, fmt.Errorf("%s: %w", bank.Origin(), questions.ErrEmptyBank)
	}
	return bank, nil
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Listen address")
	serveCmd.Flags().String("bank", "", "Path to a question bank JSON file (default: embedded bank)")
}
