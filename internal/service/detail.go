package service

import (
	"context"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"

	"movie-discovery-explorer/internal/models"
	"movie-discovery-explorer/internal/tmdb"
)

// DetailSection names one independently loaded part of the detail screen.
type DetailSection string

const (
	SectionDetail    DetailSection = "detail"
	SectionTrailer   DetailSection = "trailer"
	SectionProviders DetailSection = "providers"
	SectionSimilar   DetailSection = "similar"
)

// DetailUpdate reports one settled section. Err set on SectionDetail is
// fatal for the screen; on any other section it only marks that section
// unavailable.
type DetailUpdate struct {
	Section    DetailSection
	Detail     *models.MovieDetail
	TrailerKey string
	Providers  []string
	Similar    []models.MovieSummary
	Err        error
}

// DetailObserver receives sections as they settle. It is called from
// several goroutines and must be safe for concurrent use.
type DetailObserver func(DetailUpdate)

// Detail loads the detail screen for (kind, id). The item, its videos and
// its watch providers are fetched in parallel; similar movies follow once
// the item's genres are known. Only a failed item lookup fails the call.
func (a *Aggregator) Detail(ctx context.Context, kind models.MediaKind, id int, observe DetailObserver) (*models.DetailView, error) {
	if observe == nil {
		observe = func(DetailUpdate) {}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		detail    *models.MovieDetail
		detailErr error

		trailerKey string
		trailerErr error

		providers    []string
		providersErr error

		similar    []models.MovieSummary
		similarErr error
	)

	var wg conc.WaitGroup
	wg.Go(func() {
		detail, detailErr = a.catalog.Detail(ctx, kind, id)
		if detailErr != nil {
			// nothing else is worth showing without the item itself
			cancel()
			observe(DetailUpdate{Section: SectionDetail, Err: detailErr})
			return
		}
		observe(DetailUpdate{Section: SectionDetail, Detail: detail})

		similar, similarErr = a.similar(ctx, detail)
		observe(DetailUpdate{Section: SectionSimilar, Similar: similar, Err: similarErr})
	})
	wg.Go(func() {
		var videos []models.Video
		videos, trailerErr = a.catalog.Videos(ctx, kind, id)
		if trailerErr == nil {
			trailerKey = PickTrailer(videos)
		}
		observe(DetailUpdate{Section: SectionTrailer, TrailerKey: trailerKey, Err: trailerErr})
	})
	wg.Go(func() {
		var offers models.WatchProviders
		offers, providersErr = a.catalog.WatchProviders(ctx, kind, id)
		if providersErr == nil {
			providers = a.providerNames(offers)
		}
		observe(DetailUpdate{Section: SectionProviders, Providers: providers, Err: providersErr})
	})
	wg.Wait()

	if detailErr != nil {
		a.log.Error("detail aggregation failed",
			zap.String("kind", string(kind)),
			zap.Int("id", id),
			zap.Error(detailErr),
		)
		return nil, wrap(ErrorTypeDetailUnavailable, "failed to load item", detailErr)
	}

	view := &models.DetailView{
		Movie:           *detail,
		TrailerStatus:   sectionStatus(trailerErr),
		ProvidersStatus: sectionStatus(providersErr),
		SimilarStatus:   sectionStatus(similarErr),
		Similar:         similar,
	}
	view.Movie.TrailerKey = trailerKey
	view.Movie.Providers = providers

	for section, err := range map[DetailSection]error{
		SectionTrailer:   trailerErr,
		SectionProviders: providersErr,
		SectionSimilar:   similarErr,
	} {
		if err != nil {
			a.log.Warn("detail section unavailable",
				zap.String("section", string(section)),
				zap.Int("id", id),
				zap.Error(err),
			)
		}
	}
	return view, nil
}

func (a *Aggregator) similar(ctx context.Context, detail *models.MovieDetail) ([]models.MovieSummary, error) {
	results, err := a.catalog.DiscoverByGenres(ctx, detail.GenreIDs(), tmdb.SortPopularityDesc, 1)
	if err != nil {
		return nil, err
	}

	similar := make([]models.MovieSummary, 0, SimilarLimit)
	for _, m := range results {
		if m.ID == detail.ID || !m.HasPoster() {
			continue
		}
		similar = append(similar, m)
		if len(similar) == SimilarLimit {
			break
		}
	}
	return similar, nil
}

func (a *Aggregator) providerNames(offers models.WatchProviders) []string {
	list := offers[a.region]
	names := make([]string, 0, len(list))
	for _, p := range list {
		names = append(names, p.Name)
	}
	return names
}

// PickTrailer returns the key of the first video typed "Trailer", or "".
func PickTrailer(videos []models.Video) string {
	for _, v := range videos {
		if v.Type == trailerType {
			return v.Key
		}
	}
	return ""
}

func sectionStatus(err error) models.SectionStatus {
	if err != nil {
		return models.SectionUnavailable
	}
	return models.SectionReady
}
