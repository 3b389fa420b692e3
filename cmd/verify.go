package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/trusthire/internal/scoring"
	"github.com/spigell/trusthire/internal/verification"
)

const (
	PromptShowMatches     = "Show skill matches"
	PromptRecommendations = "Show recommendations"
	PromptQuestions       = "Generate interview questions"
	PromptReportToFile    = "Dump report to file"
	PromptExit            = "Exit"
)

var errExit = errors.New("exit requested")

var verifyPrompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptShowMatches, PromptRecommendations, PromptQuestions, PromptReportToFile, PromptExit},
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify a resume against a GitHub profile",
	Run: func(cmd *cobra.Command, _ []string) {
		runVerify(cmd)
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringP("resume", "r", "", "path to the resume (pdf, txt, md or html)")
	verifyCmd.Flags().StringP("username", "u", "", "GitHub username of the candidate")
	verifyCmd.Flags().BoolP("interactive", "i", false, "open an action menu after the report")

	verifyCmd.MarkFlagRequired("resume")
	verifyCmd.MarkFlagRequired("username")
}

func runVerify(cmd *cobra.Command) {
	ctx := context.Background()
	a := newApplication(ctx)
	logger := a.logger

	resumePath, _ := cmd.Flags().GetString("resume")
	username, _ := cmd.Flags().GetString("username")
	interactive, _ := cmd.Flags().GetBool("interactive")

	doc, err := a.readResume(resumePath)
	if err != nil {
		logger.Fatal("reading resume", zap.String("resume", resumePath), zap.Error(err))
	}

	logger.Info("resume loaded", zap.Int("words", doc.WordCount), zap.Int("chars", doc.CharCount))

	report, err := a.verifier.Verify(ctx, username, doc.Text)
	if err != nil {
		logger.Fatal("verification failed", zap.String("username", username), zap.Error(err))
	}

	if !interactive {
		if err := printJSON(cmd.OutOrStdout(), report); err != nil {
			logger.Fatal("printing report", zap.Error(err))
		}
		return
	}

	printSummary(cmd.OutOrStdout(), report)

	for {
		_, action, err := verifyPrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(ctx, cmd.OutOrStdout(), action, a, report); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(ctx context.Context, w io.Writer, action string, a *application, report *verification.Report) error {
	switch action {
	case PromptShowMatches:
		printMatches(w, report.Matches)
		return nil
	case PromptRecommendations:
		for _, rec := range report.Recommendations {
			fmt.Fprintln(w, rec)
		}
		return nil
	case PromptQuestions:
		skills := make([]string, 0, len(report.Matches))
		for _, m := range report.Matches {
			skills = append(skills, m.Skill)
		}
		for i, q := range a.interviews.Questions(ctx, skills, report.UnmatchedSkills) {
			fmt.Fprintf(w, "%2d. %s\n", i+1, q)
		}
		return nil
	case PromptReportToFile:
		filename, err := report.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump report to file: %w", err)
		}
		a.logger.Info("dumping report to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		a.logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func printSummary(w io.Writer, report *verification.Report) {
	fmt.Fprintf(w, "GitHub user:      %s\n", report.Username)
	fmt.Fprintf(w, "Resume skills:    %d\n", report.TotalResumeSkills)
	fmt.Fprintf(w, "GitHub skills:    %d\n", report.TotalGitHubSkills)
	fmt.Fprintf(w, "Matched skills:   %d (%.2f%%)\n", report.MatchedCount, report.MatchPercentage)
	fmt.Fprintf(w, "Trust score:      %.2f\n", report.TrustScore)
	fmt.Fprintf(w, "Risk level:       %s\n", report.RiskLevel)
}

func printMatches(w io.Writer, matches []scoring.SkillMatch) {
	for _, m := range matches {
		mark := "-"
		switch m.Confidence {
		case scoring.ConfidenceExact:
			mark = "+"
		case scoring.ConfidencePartial:
			mark = "~"
		}

		line := fmt.Sprintf("%s %-24s %.1f", mark, m.Skill, m.Confidence)
		if len(m.Projects) > 0 {
			line += "  " + strings.Join(m.Projects, ", ")
		}
		fmt.Fprintln(w, line)
	}
}
