package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract and rank the skills mentioned in a resume",
	Run: func(cmd *cobra.Command, _ []string) {
		a := newApplication(context.Background())

		resumePath, _ := cmd.Flags().GetString("resume")

		doc, err := a.readResume(resumePath)
		if err != nil {
			a.logger.Fatal("reading resume", zap.String("resume", resumePath), zap.Error(err))
		}

		extraction, err := a.verifier.ExtractSkills(doc.Text)
		if err != nil {
			a.logger.Fatal("extracting skills", zap.Error(err))
		}

		if err := printJSON(cmd.OutOrStdout(), extraction); err != nil {
			a.logger.Fatal("printing skills", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringP("resume", "r", "", "path to the resume (pdf, txt, md or html)")
	extractCmd.MarkFlagRequired("resume")
}
