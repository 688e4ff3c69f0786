package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"movie-discovery-explorer/internal/config"
	"movie-discovery-explorer/internal/models"
)

// SortOrder is a discover sort_by value.
type SortOrder string

const SortPopularityDesc SortOrder = "popularity.desc"

// Client is the TMDB API client. It never retries; callers decide what a
// failed lookup means for their screen.
type Client struct {
	apiKey   string
	baseURL  string
	language string
	http     *http.Client
	log      *zap.Logger
}

// NewClient creates a new TMDB API client.
func NewClient(cfg config.TMDBConfig, log *zap.Logger) *Client {
	return &Client{
		apiKey:   cfg.APIKey,
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		language: cfg.Language,
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
		log: log,
	}
}

// ---- List lookups ----

// Popular fetches /movie/popular.
func (c *Client) Popular(ctx context.Context, page int) ([]models.MovieSummary, error) {
	return c.list(ctx, "popular", "/movie/popular", pageParams(page))
}

// NowPlaying fetches /movie/now_playing.
func (c *Client) NowPlaying(ctx context.Context, page int) ([]models.MovieSummary, error) {
	return c.list(ctx, "now_playing", "/movie/now_playing", pageParams(page))
}

// TopRated fetches /movie/top_rated.
func (c *Client) TopRated(ctx context.Context, page int) ([]models.MovieSummary, error) {
	return c.list(ctx, "top_rated", "/movie/top_rated", pageParams(page))
}

// SearchByTitle fetches /search/movie for query.
func (c *Client) SearchByTitle(ctx context.Context, query string, page int) ([]models.MovieSummary, error) {
	params := pageParams(page)
	params.Set("query", query)
	return c.list(ctx, "search", "/search/movie", params)
}

// DiscoverByGenre fetches /discover/movie filtered to a single genre.
func (c *Client) DiscoverByGenre(ctx context.Context, genreID, page int) ([]models.MovieSummary, error) {
	params := pageParams(page)
	params.Set("with_genres", strconv.Itoa(genreID))
	return c.list(ctx, "discover_genre", "/discover/movie", params)
}

// DiscoverByGenres fetches /discover/movie for movies sharing any of the
// given genres. An empty genre list leaves the filter off.
func (c *Client) DiscoverByGenres(ctx context.Context, genreIDs []int, sort SortOrder, page int) ([]models.MovieSummary, error) {
	params := pageParams(page)
	if len(genreIDs) > 0 {
		ids := make([]string, len(genreIDs))
		for i, id := range genreIDs {
			ids[i] = strconv.Itoa(id)
		}
		params.Set("with_genres", strings.Join(ids, ","))
	}
	if sort != "" {
		params.Set("sort_by", string(sort))
	}
	return c.list(ctx, "discover_genres", "/discover/movie", params)
}

// GenreList fetches all movie genres.
func (c *Client) GenreList(ctx context.Context) ([]models.Genre, error) {
	const op = "genre_list"

	var result GenreListResponse
	if err := c.get(ctx, op, "/genre/movie/list", url.Values{}, &result); err != nil {
		return nil, err
	}
	if result.Genres == nil {
		return nil, malformed(op, errors.New("missing genres"))
	}
	return convertGenres(result.Genres), nil
}

// ---- Item lookups ----

// Detail fetches /{kind}/{id}.
func (c *Client) Detail(ctx context.Context, kind models.MediaKind, id int) (*models.MovieDetail, error) {
	const op = "detail"

	var result TMDBMovieDetail
	if err := c.get(ctx, op, itemPath(kind, id, ""), url.Values{}, &result); err != nil {
		return nil, err
	}
	if result.ID == 0 {
		return nil, malformed(op, errors.New("missing id"))
	}
	return convertDetail(result, kind), nil
}

// Videos fetches /{kind}/{id}/videos.
func (c *Client) Videos(ctx context.Context, kind models.MediaKind, id int) ([]models.Video, error) {
	const op = "videos"

	var result VideosResponse
	if err := c.get(ctx, op, itemPath(kind, id, "/videos"), url.Values{}, &result); err != nil {
		return nil, err
	}
	if result.Results == nil {
		return nil, malformed(op, errors.New("missing results"))
	}

	videos := make([]models.Video, 0, len(result.Results))
	for _, v := range result.Results {
		videos = append(videos, models.Video{Key: v.Key, Name: v.Name, Site: v.Site, Type: v.Type})
	}
	return videos, nil
}

// WatchProviders fetches /{kind}/{id}/watch/providers and keeps the
// flat-rate offers of every region.
func (c *Client) WatchProviders(ctx context.Context, kind models.MediaKind, id int) (models.WatchProviders, error) {
	const op = "watch_providers"

	var result WatchProvidersResponse
	if err := c.get(ctx, op, itemPath(kind, id, "/watch/providers"), url.Values{}, &result); err != nil {
		return nil, err
	}
	if result.Results == nil {
		return nil, malformed(op, errors.New("missing results"))
	}

	providers := make(models.WatchProviders, len(result.Results))
	for region, offers := range result.Results {
		list := make([]models.WatchProvider, 0, len(offers.Flatrate))
		for _, p := range offers.Flatrate {
			list = append(list, models.WatchProvider{ID: p.ProviderID, Name: p.ProviderName})
		}
		providers[region] = list
	}
	return providers, nil
}

// ---- Helpers ----

func (c *Client) list(ctx context.Context, op, path string, params url.Values) ([]models.MovieSummary, error) {
	var result ListResponse
	if err := c.get(ctx, op, path, params, &result); err != nil {
		return nil, err
	}
	if result.Results == nil {
		return nil, malformed(op, errors.New("missing results"))
	}
	return convertMovies(result.Results, models.MediaMovie), nil
}

func (c *Client) get(ctx context.Context, op, path string, params url.Values, out any) error {
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	endpoint := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return unavailable(op, 0, fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	c.log.Debug("fetching TMDB", zap.String("op", op), zap.String("path", path))
	resp, err := c.http.Do(req)
	if err != nil {
		return unavailable(op, 0, fmt.Errorf("executing request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return unavailable(op, resp.StatusCode, fmt.Errorf("TMDB API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return malformed(op, fmt.Errorf("failed to decode %s response: %w", op, err))
	}
	return nil
}

func pageParams(page int) url.Values {
	if page < 1 {
		page = 1
	}
	return url.Values{"page": []string{strconv.Itoa(page)}}
}

func itemPath(kind models.MediaKind, id int, suffix string) string {
	return fmt.Sprintf("/%s/%d%s", kind, id, suffix)
}
