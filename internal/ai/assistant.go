package ai

import "context"

// QuestionGenerator writes interview questions for claimed skills. Skills in
// unverified lack evidence on GitHub and should be probed first.
type QuestionGenerator interface {
	Questions(ctx context.Context, skills, unverified []string) ([]string, error)
}
