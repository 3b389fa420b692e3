package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var questionsCmd = &cobra.Command{
	Use:   "questions <skill>...",
	Short: "Generate interview questions for skills",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		a := newApplication(ctx)

		unverified, _ := cmd.Flags().GetStringSlice("unverified")

		questions := a.interviews.Questions(ctx, args, unverified)
		if err := printJSON(cmd.OutOrStdout(), map[string][]string{"questions": questions}); err != nil {
			a.logger.Fatal("printing questions", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(questionsCmd)

	questionsCmd.Flags().StringSlice("unverified", nil, "skills without GitHub evidence, asked about first")
}
