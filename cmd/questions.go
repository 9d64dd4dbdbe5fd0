package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kompaksatyabuana/kompak/internal/questions"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Inspect question banks",
}

var questionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the questions of a bank (default: embedded bank)",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("bank")
		bank, err := questions.LoadBank(path)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%4s  %-56s  %-20s  %s\n", "ID", "Question", "Answer", "Expl.")
		fmt.Fprintln(out, strings.Repeat("─", 90))

		for _, q := range bank.Questions() {
			prompt := q.Prompt
			if len([]rune(prompt)) > 56 {
				prompt = string([]rune(prompt)[:53]) + "..."
			}
			answer := q.Answer
			if len([]rune(answer)) > 20 {
				answer = string([]rune(answer)[:17]) + "..."
			}
			expl := ""
			if q.HasExplanation() {
				expl = "yes"
			}
			fmt.Fprintf(out, "%4d  %-56s  %-20s  %s\n", q.ID, prompt, answer, expl)
		}

		fmt.Fprintf(out, "\n%d questions (%s)\n", bank.Len(), bank.Origin())
		return nil
	},
}

var questionsValidateCmd = &cobra.Command{
	Use:   "validate <path>",
	Short: "Check a question bank file against the bank schema and rules",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bank, err := questions.OpenBank(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d questions OK\n", bank.Origin(), bank.Len())
		return nil
	},
}

func init() {
	questionsListCmd.Flags().String("bank", "", "Path to a question bank JSON file")

	questionsCmd.AddCommand(questionsListCmd)
	questionsCmd.AddCommand(questionsValidateCmd)
}
