package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var profileCmd = &cobra.Command{
	Use:   "profile <username>",
	Short: "Analyze the public GitHub profile of a user",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		a := newApplication(ctx)

		prof, err := a.verifier.Profile(ctx, args[0])
		if err != nil {
			a.logger.Fatal("analyzing profile", zap.String("username", args[0]), zap.Error(err))
		}

		if err := printJSON(cmd.OutOrStdout(), prof); err != nil {
			a.logger.Fatal("printing profile", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
}
