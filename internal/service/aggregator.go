package service

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"movie-discovery-explorer/internal/models"
	"movie-discovery-explorer/internal/tmdb"
)

const (
	FeaturedLimit   = 5
	SimilarLimit    = 30
	ListingLimit    = 50
	SuggestionLimit = 5

	trailerType = "Trailer"
)

// Catalog is the set of catalog lookups the aggregator depends on.
type Catalog interface {
	Popular(ctx context.Context, page int) ([]models.MovieSummary, error)
	NowPlaying(ctx context.Context, page int) ([]models.MovieSummary, error)
	TopRated(ctx context.Context, page int) ([]models.MovieSummary, error)
	GenreList(ctx context.Context) ([]models.Genre, error)
	SearchByTitle(ctx context.Context, query string, page int) ([]models.MovieSummary, error)
	DiscoverByGenre(ctx context.Context, genreID, page int) ([]models.MovieSummary, error)
	DiscoverByGenres(ctx context.Context, genreIDs []int, sort tmdb.SortOrder, page int) ([]models.MovieSummary, error)
	Detail(ctx context.Context, kind models.MediaKind, id int) (*models.MovieDetail, error)
	Videos(ctx context.Context, kind models.MediaKind, id int) ([]models.Video, error)
	WatchProviders(ctx context.Context, kind models.MediaKind, id int) (models.WatchProviders, error)
}

// Aggregator builds screen view models out of several catalog lookups.
type Aggregator struct {
	catalog Catalog
	images  models.Images
	region  string
	log     *zap.Logger
}

// NewAggregator creates a new Aggregator. region selects which country's
// watch providers are reported.
func NewAggregator(catalog Catalog, images models.Images, region string, log *zap.Logger) *Aggregator {
	return &Aggregator{
		catalog: catalog,
		images:  images,
		region:  region,
		log:     log,
	}
}

// Home runs the four home-screen lookups in parallel. Any failure fails the
// whole screen; there is no partial home view.
func (a *Aggregator) Home(ctx context.Context) (*models.HomeView, error) {
	var (
		popular    []models.MovieSummary
		genres     []models.Genre
		nowPlaying []models.MovieSummary
		topRated   []models.MovieSummary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		popular, err = a.catalog.Popular(gctx, 1)
		return err
	})
	g.Go(func() (err error) {
		genres, err = a.catalog.GenreList(gctx)
		return err
	})
	g.Go(func() (err error) {
		nowPlaying, err = a.catalog.NowPlaying(gctx, 1)
		return err
	})
	g.Go(func() (err error) {
		topRated, err = a.catalog.TopRated(gctx, 1)
		return err
	})

	if err := g.Wait(); err != nil {
		a.log.Error("home aggregation failed", zap.Error(err))
		return nil, wrap(ErrorTypeHomeUnavailable, "failed to load home screen", err)
	}

	backdrops := make([]string, 0, len(topRated))
	for _, m := range topRated {
		if m.BackdropPath != "" {
			backdrops = append(backdrops, a.images.Backdrop(m.BackdropPath))
		}
	}

	view := &models.HomeView{
		Movies:    popular,
		Genres:    genres,
		Featured:  head(nowPlaying, FeaturedLimit),
		Backdrops: backdrops,
	}
	a.log.Debug("home aggregated",
		zap.Int("movies", len(view.Movies)),
		zap.Int("genres", len(view.Genres)),
		zap.Int("backdrops", len(view.Backdrops)),
	)
	return view, nil
}

// Search lists movies matching query. An empty query resets to the popular
// listing and yields no suggestions.
func (a *Aggregator) Search(ctx context.Context, query string) (*models.Listing, error) {
	if strings.TrimSpace(query) == "" {
		movies, err := a.catalog.Popular(ctx, 1)
		if err != nil {
			return nil, wrap(ErrorTypeListingUnavailable, "failed to load popular movies", err)
		}
		return &models.Listing{Movies: head(movies, ListingLimit), Suggestions: []models.SearchSuggestion{}}, nil
	}

	movies, err := a.catalog.SearchByTitle(ctx, query, 1)
	if err != nil {
		return nil, wrap(ErrorTypeListingUnavailable, "failed to search movies", err)
	}
	return &models.Listing{Movies: head(movies, ListingLimit), Suggestions: Suggestions(movies)}, nil
}

// ByGenre lists movies of one genre, or the popular listing when genreID is nil.
func (a *Aggregator) ByGenre(ctx context.Context, genreID *int) (*models.Listing, error) {
	var (
		movies []models.MovieSummary
		err    error
	)
	if genreID == nil {
		movies, err = a.catalog.Popular(ctx, 1)
	} else {
		movies, err = a.catalog.DiscoverByGenre(ctx, *genreID, 1)
	}
	if err != nil {
		return nil, wrap(ErrorTypeListingUnavailable, "failed to load genre listing", err)
	}
	return &models.Listing{Movies: head(movies, ListingLimit), Suggestions: []models.SearchSuggestion{}}, nil
}

// Suggestions projects the first results onto (id, title) pairs.
func Suggestions(movies []models.MovieSummary) []models.SearchSuggestion {
	top := head(movies, SuggestionLimit)
	out := make([]models.SearchSuggestion, 0, len(top))
	for _, m := range top {
		out = append(out, models.SearchSuggestion{ID: m.ID, Title: m.Title})
	}
	return out
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
