package tmdb

import "movie-discovery-explorer/internal/models"

// ---- TMDB Response Types ----

// ListResponse is the shape shared by popular, now_playing, top_rated,
// search and discover.
type ListResponse struct {
	Page         int         `json:"page"`
	Results      []TMDBMovie `json:"results"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
}

// TMDBMovie is a movie (or show) from TMDB list results.
type TMDBMovie struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	Popularity   float64 `json:"popularity"`
	VoteAverage  float64 `json:"vote_average"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	GenreIDs     []int   `json:"genre_ids"`
	MediaType    string  `json:"media_type"`
}

// TMDBMovieDetail is the detailed movie or show info from TMDB.
type TMDBMovieDetail struct {
	ID           int         `json:"id"`
	Title        string      `json:"title"`
	Name         string      `json:"name"`
	Overview     string      `json:"overview"`
	ReleaseDate  string      `json:"release_date"`
	FirstAirDate string      `json:"first_air_date"`
	PosterPath   string      `json:"poster_path"`
	BackdropPath string      `json:"backdrop_path"`
	Genres       []TMDBGenre `json:"genres"`
	VoteAverage  *float64    `json:"vote_average"`
	Runtime      int         `json:"runtime"`
}

// TMDBGenre is a genre from TMDB.
type TMDBGenre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GenreListResponse is the TMDB genre/movie/list response.
type GenreListResponse struct {
	Genres []TMDBGenre `json:"genres"`
}

// VideosResponse is the TMDB /{kind}/{id}/videos response.
type VideosResponse struct {
	ID      int         `json:"id"`
	Results []TMDBVideo `json:"results"`
}

// TMDBVideo is one video attached to an item.
type TMDBVideo struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

// WatchProvidersResponse is the TMDB /{kind}/{id}/watch/providers response.
type WatchProvidersResponse struct {
	ID      int                            `json:"id"`
	Results map[string]TMDBRegionProviders `json:"results"`
}

// TMDBRegionProviders lists offers in one region.
type TMDBRegionProviders struct {
	Link     string         `json:"link"`
	Flatrate []TMDBProvider `json:"flatrate"`
	Rent     []TMDBProvider `json:"rent"`
	Buy      []TMDBProvider `json:"buy"`
}

// TMDBProvider is a single watch provider.
type TMDBProvider struct {
	ProviderID   int    `json:"provider_id"`
	ProviderName string `json:"provider_name"`
	LogoPath     string `json:"logo_path"`
}

// ---- Conversions ----

func convertMovie(m TMDBMovie, fallback models.MediaKind) models.MovieSummary {
	kind := fallback
	if k, ok := models.ParseMediaKind(m.MediaType); ok {
		kind = k
	}
	title := m.Title
	if title == "" {
		title = m.Name
	}
	return models.MovieSummary{
		ID:           m.ID,
		Title:        title,
		Overview:     m.Overview,
		PosterPath:   m.PosterPath,
		BackdropPath: m.BackdropPath,
		GenreIDs:     m.GenreIDs,
		MediaKind:    kind,
	}
}

func convertMovies(results []TMDBMovie, kind models.MediaKind) []models.MovieSummary {
	movies := make([]models.MovieSummary, 0, len(results))
	for _, m := range results {
		movies = append(movies, convertMovie(m, kind))
	}
	return movies
}

func convertGenres(genres []TMDBGenre) []models.Genre {
	out := make([]models.Genre, 0, len(genres))
	for _, g := range genres {
		out = append(out, models.Genre{ID: g.ID, Name: g.Name})
	}
	return out
}

func convertDetail(d TMDBMovieDetail, kind models.MediaKind) *models.MovieDetail {
	title := d.Title
	if title == "" {
		title = d.Name
	}
	released := d.ReleaseDate
	if released == "" {
		released = d.FirstAirDate
	}
	return &models.MovieDetail{
		ID:           d.ID,
		Title:        title,
		Overview:     d.Overview,
		PosterPath:   d.PosterPath,
		BackdropPath: d.BackdropPath,
		MediaKind:    kind,
		Genres:       convertGenres(d.Genres),
		Rating:       d.VoteAverage,
		ReleaseDate:  released,
	}
}
