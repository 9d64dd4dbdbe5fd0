package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kompaksatyabuana/kompak/internal/app"
	"github.com/kompaksatyabuana/kompak/internal/config"
	"github.com/kompaksatyabuana/kompak/internal/logging"
	"github.com/kompaksatyabuana/kompak/internal/questions"
	"github.com/kompaksatyabuana/kompak/internal/session"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take the timed English quiz in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuiz(cmd)
	},
}

func init() {
	quizCmd.Flags().String("url", "", "Base URL of a kompak server (e.g. http://localhost:8080)")
	quizCmd.Flags().String("bank", "", "Path to a question bank JSON file")
	quizCmd.Flags().Duration("time-limit", 0, "Time limit for one attempt (default 5m)")
}

// runQuiz resolves the question source and launches the TUI.
func runQuiz(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyQuizFlags(cmd, &cfg.Quiz); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("the quiz needs an interactive terminal")
	}

	// The TUI owns the terminal, so logs only go to a file.
	logger, closer, err := logging.FromConfig("kompak", cfg.Log, io.Discard)
	if err != nil {
		return err
	}
	defer closer.Close()

	src, name, err := quizSource(cfg.Quiz)
	if err != nil {
		return err
	}

	return app.Run(cmd.Context(), app.Options{
		Source: questions.WithLogging(src, name, logger.Named("questions")),
		SessionOptions: []session.Option{
			session.WithTimeLimit(cfg.Quiz.TimeLimit),
			session.WithExplanationDelay(cfg.Quiz.ExplanationDelay),
		},
		Logger:      logger,
		LoadTimeout: cfg.Quiz.RequestTimeout,
	})
}

// applyQuizFlags overlays the quiz flags, when present on cmd, onto q.
func applyQuizFlags(cmd *cobra.Command, q *config.QuizConfig) error {
	flags := cmd.Flags()
	if f := flags.Lookup("url"); f != nil && f.Changed {
		q.URL = f.Value.String()
		q.BankPath = ""
	}
	if f := flags.Lookup("bank"); f != nil && f.Changed {
		if q.URL != "" && flags.Changed("url") {
			return errors.New("use --url or --bank, not both")
		}
		q.BankPath = f.Value.String()
		q.URL = ""
	}
	if f := flags.Lookup("time-limit"); f != nil && f.Changed {
		d, err := flags.GetDuration("time-limit")
		if err != nil {
			return err
		}
		q.TimeLimit = d
	}
	return nil
}

// quizSource picks the HTTP client when a URL is configured, otherwise a
// bank from disk or the embedded one.
func quizSource(q config.QuizConfig) (questions.Source, string, error) {
	if q.URL != "" {
		c := questions.NewClient(q.URL, questions.WithTimeout(q.RequestTimeout))
		return c, c.URL(), nil
	}
	bank, err := questions.LoadBank(q.BankPath)
	if err != nil {
		return nil, "", fmt.Errorf("load question bank: %w", err)
	}
	return bank, bank.Origin(), nil
}
