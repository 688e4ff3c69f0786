package handler

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"movie-discovery-explorer/internal/models"
	"movie-discovery-explorer/internal/service"
	"movie-discovery-explorer/internal/viewstate"
)

// ViewSource is the aggregation the view models are built from.
type ViewSource interface {
	Home(ctx context.Context) (*models.HomeView, error)
	ResolveFavorites(ctx context.Context, ids []int) []models.MovieSummary
	Search(ctx context.Context, query string) (*models.Listing, error)
	ByGenre(ctx context.Context, genreID *int) (*models.Listing, error)
	Detail(ctx context.Context, kind models.MediaKind, id int, observe service.DetailObserver) (*models.DetailView, error)
}

// FavoritesStore is the favorites set as seen by the handler.
type FavoritesStore interface {
	List(ctx context.Context) []int
	Contains(ctx context.Context, id int) bool
	Add(ctx context.Context, id int) error
	Remove(ctx context.Context, id int) error
}

// ViewHandler serves screen view models over HTTP.
type ViewHandler struct {
	source    ViewSource
	favorites FavoritesStore
	images    models.Images
	rotation  time.Duration
	log       *zap.Logger
}

// NewViewHandler creates a new ViewHandler.
func NewViewHandler(source ViewSource, favorites FavoritesStore, images models.Images, rotation time.Duration, log *zap.Logger) *ViewHandler {
	return &ViewHandler{
		source:    source,
		favorites: favorites,
		images:    images,
		rotation:  rotation,
		log:       log,
	}
}

// Register mounts the view routes on r.
func (h *ViewHandler) Register(r fiber.Router, listingLimiter fiber.Handler) {
	r.Get("/health", h.Health)
	r.Get("/home", h.Home)
	r.Get("/movies", listingLimiter, h.Listing)
	r.Get("/items/:kind/:id", h.Detail)
	r.Get("/favorites", h.ListFavorites)
	r.Get("/favorites/:id", h.GetFavorite)
	r.Put("/favorites/:id", h.AddFavorite)
	r.Delete("/favorites/:id", h.RemoveFavorite)
}

// Health returns service health status.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *ViewHandler) Health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "movie-discovery-explorer",
	})
}

// Home returns the home screen view model.
// @Summary Home screen
// @Tags views
// @Produce json
// @Success 200 {object} HomeResponse
// @Failure 502 {object} ErrorResponse
// @Router /home [get]
func (h *ViewHandler) Home(c fiber.Ctx) error {
	ctx := c.Context()

	view, err := h.source.Home(ctx)
	if err != nil {
		return h.upstreamError(c, "failed to load home screen", err)
	}
	favorites := h.source.ResolveFavorites(ctx, h.favorites.List(ctx))

	movies := cards(viewstate.VisibleMovies(view.Movies, nil), view.Genres, h.images.Poster)
	return c.JSON(HomeResponse{
		Heading:   viewstate.AllGenresText,
		Movies:    movies,
		Empty:     emptyMessage(movies),
		Genres:    view.Genres,
		Featured:  cards(view.Featured, view.Genres, h.featuredURL),
		Backdrops: view.Backdrops,
		Favorites: cards(favorites, view.Genres, h.images.Poster),
		Interval:  h.rotation.Milliseconds(),
	})
}

// Listing returns the movie list for a search query or a genre.
// @Summary Search or filter movies
// @Tags views
// @Produce json
// @Param query query string false "Title search"
// @Param genre query int false "Genre ID"
// @Success 200 {object} ListingResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /movies [get]
func (h *ViewHandler) Listing(c fiber.Ctx) error {
	query := c.Query("query")

	var genreID *int
	if raw := c.Query("genre"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error: "invalid genre ID",
			})
		}
		genreID = &id
	}

	var (
		listing *models.Listing
		err     error
	)
	if strings.TrimSpace(query) != "" || genreID == nil {
		listing, err = h.source.Search(c.Context(), query)
	} else {
		listing, err = h.source.ByGenre(c.Context(), genreID)
	}
	if err != nil {
		return h.upstreamError(c, "failed to load movies", err)
	}

	movies := cards(viewstate.VisibleMovies(listing.Movies, genreID), nil, h.images.Poster)
	return c.JSON(ListingResponse{
		Movies:      movies,
		Empty:       emptyMessage(movies),
		Suggestions: listing.Suggestions,
	})
}

// Detail returns the detail screen view model.
// @Summary Item detail
// @Tags views
// @Produce json
// @Param kind path string true "movie or tv"
// @Param id path int true "Item ID"
// @Success 200 {object} DetailResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /items/{kind}/{id} [get]
func (h *ViewHandler) Detail(c fiber.Ctx) error {
	kind, ok := models.ParseMediaKind(c.Params("kind"))
	id, err := strconv.Atoi(c.Params("id"))
	if !ok || err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid URL parameters",
		})
	}

	ctx := c.Context()
	view, err := h.source.Detail(ctx, kind, id, nil)
	if err != nil {
		return h.upstreamError(c, "failed to load item", err)
	}

	m := view.Movie
	stars, showStars := viewstate.RatingStars(m.Rating)
	providers := m.Providers
	if providers == nil {
		providers = []string{}
	}
	return c.JSON(DetailResponse{
		ID:                  m.ID,
		Kind:                kind,
		Title:               m.Title,
		Overview:            m.Overview,
		Genres:              viewstate.DetailGenreNames(m.Genres),
		PosterURL:           h.images.Poster(m.PosterPath),
		BackdropURL:         h.images.Backdrop(m.BackdropPath),
		ReleaseDate:         m.ReleaseDate,
		Rating:              m.Rating,
		Stars:               stars,
		ShowStars:           showStars,
		TrailerURL:          models.TrailerURL(m.TrailerKey),
		TrailerThumbnailURL: models.TrailerThumbnailURL(m.TrailerKey),
		TrailerStatus:       view.TrailerStatus,
		Providers:           providers,
		ProvidersStatus:     view.ProvidersStatus,
		Similar:             cards(view.Similar, nil, h.similarURL),
		SimilarStatus:       view.SimilarStatus,
		IsFavorite:          h.favorites.Contains(ctx, id),
	})
}

// ListFavorites returns the stored favorite ids.
// @Summary List favorites
// @Tags favorites
// @Produce json
// @Success 200 {object} FavoritesResponse
// @Router /favorites [get]
func (h *ViewHandler) ListFavorites(c fiber.Ctx) error {
	return c.JSON(FavoritesResponse{IDs: h.favorites.List(c.Context())})
}

// GetFavorite reports whether one id is a favorite.
// @Summary Favorite membership
// @Tags favorites
// @Produce json
// @Param id path int true "Movie ID"
// @Success 200 {object} FavoriteResponse
// @Failure 400 {object} ErrorResponse
// @Router /favorites/{id} [get]
func (h *ViewHandler) GetFavorite(c fiber.Ctx) error {
	id, ok := favoriteID(c)
	if !ok {
		return invalidFavoriteID(c)
	}
	return c.JSON(FavoriteResponse{ID: id, IsFavorite: h.favorites.Contains(c.Context(), id)})
}

// AddFavorite adds an id to favorites.
// @Summary Add favorite
// @Tags favorites
// @Produce json
// @Param id path int true "Movie ID"
// @Success 200 {object} FavoriteResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /favorites/{id} [put]
func (h *ViewHandler) AddFavorite(c fiber.Ctx) error {
	id, ok := favoriteID(c)
	if !ok {
		return invalidFavoriteID(c)
	}
	if err := h.favorites.Add(c.Context(), id); err != nil {
		h.log.Error("failed to add favorite", zap.Int("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "failed to save favorites",
		})
	}
	return c.JSON(FavoriteResponse{ID: id, IsFavorite: true})
}

// RemoveFavorite removes an id from favorites.
// @Summary Remove favorite
// @Tags favorites
// @Produce json
// @Param id path int true "Movie ID"
// @Success 200 {object} FavoriteResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /favorites/{id} [delete]
func (h *ViewHandler) RemoveFavorite(c fiber.Ctx) error {
	id, ok := favoriteID(c)
	if !ok {
		return invalidFavoriteID(c)
	}
	if err := h.favorites.Remove(c.Context(), id); err != nil {
		h.log.Error("failed to remove favorite", zap.Int("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "failed to save favorites",
		})
	}
	return c.JSON(FavoriteResponse{ID: id, IsFavorite: false})
}

func (h *ViewHandler) upstreamError(c fiber.Ctx, message string, err error) error {
	status := fiber.StatusInternalServerError
	if service.IsHomeUnavailable(err) || service.IsDetailUnavailable(err) || service.IsListingUnavailable(err) {
		status = fiber.StatusBadGateway
	}
	h.log.Error(message, zap.String("path", c.Path()), zap.Error(err))
	return c.Status(status).JSON(ErrorResponse{Error: message})
}

func (h *ViewHandler) featuredURL(path string) string {
	return h.images.URL(models.ImageSizeLarge, path)
}

func (h *ViewHandler) similarURL(path string) string {
	return h.images.URL(models.ImageSizeSmall, path)
}

func favoriteID(c fiber.Ctx) (int, bool) {
	id, err := strconv.Atoi(c.Params("id"))
	return id, err == nil && id > 0
}

func invalidFavoriteID(c fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error: "invalid movie ID",
	})
}
