package profile

import (
	"context"
	"math"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/trusthire/internal/github"
)

const (
	bytesPerWeightUnit = 10000
	maxWeightPerRepo   = 10
)

// tallyLanguages weights languages by how many repositories declare them as
// primary plus the byte share in the top repositories' detailed breakdowns.
func (a *Analyzer) tallyLanguages(ctx context.Context, logger *zap.Logger, username string, repos []*github.Repository) map[string]float64 {
	languages := make(map[string]float64)

	for _, repo := range repos {
		if repo.Language != "" {
			languages[strings.ToLower(repo.Language)]++
		}
	}

	top := topRepositories(repos, a.cfg.TopRepos)
	breakdowns := make([]map[string]int, len(top))

	var g errgroup.Group
	g.SetLimit(a.cfg.Concurrency)

	for i, repo := range top {
		g.Go(func() error {
			owner := repo.Owner
			if owner == "" {
				owner = username
			}

			breakdown, err := a.provider.Languages(ctx, owner, repo.Name)
			if err != nil {
				logger.Debug("skipping language breakdown",
					zap.String("repo", repo.Name),
					zap.Error(err),
				)
				return nil
			}

			breakdowns[i] = breakdown
			return nil
		})
	}

	// breakdown failures are swallowed above
	_ = g.Wait()

	for _, breakdown := range breakdowns {
		for lang, bytes := range breakdown {
			languages[strings.ToLower(lang)] += math.Min(float64(bytes)/bytesPerWeightUnit, maxWeightPerRepo)
		}
	}

	return languages
}
