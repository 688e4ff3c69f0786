package service

import (
	"context"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"

	"movie-discovery-explorer/internal/models"
)

// ResolveFavorites looks up each favorite id concurrently and returns the
// movies that resolved, in the order of ids. A failed lookup only hides that
// movie from this result; the caller's favorites set is never touched.
// Movies without a title or poster are left out as well.
func (a *Aggregator) ResolveFavorites(ctx context.Context, ids []int) []models.MovieSummary {
	resolved := make([]*models.MovieSummary, len(ids))

	var wg conc.WaitGroup
	for i, id := range ids {
		wg.Go(func() {
			detail, err := a.catalog.Detail(ctx, models.MediaMovie, id)
			if err != nil {
				a.log.Warn("favorite lookup failed, hiding it for this render",
					zap.Int("id", id),
					zap.Error(err),
				)
				return
			}
			if detail.Title == "" || detail.PosterPath == "" {
				return
			}
			summary := detail.Summary()
			resolved[i] = &summary
		})
	}
	wg.Wait()

	movies := make([]models.MovieSummary, 0, len(ids))
	for _, m := range resolved {
		if m != nil {
			movies = append(movies, *m)
		}
	}
	return movies
}
