// Package viewstate holds the interactive state of the home and detail
// screens. State only changes through the reducers in this file; the
// controllers run lookups and feed their outcomes back in as events.
package viewstate

import (
	"movie-discovery-explorer/internal/models"
	"movie-discovery-explorer/internal/service"
)

// Phase is the load state of a screen.
type Phase string

const (
	PhaseLoading Phase = "loading"
	PhaseReady   Phase = "ready"
	PhaseError   Phase = "error"
)

// HomeState is one home-screen session.
type HomeState struct {
	SessionID string
	Phase     Phase
	Err       error

	Movies    []models.MovieSummary
	Genres    []models.Genre
	Featured  []models.MovieSummary
	Backdrops []string
	Favorites []models.MovieSummary

	BackgroundIndex int
	SelectedGenre   *int
	Query           string
	Suggestions     []models.SearchSuggestion

	// ListingToken identifies the newest search or genre request; results
	// carrying any other token are stale.
	ListingToken   string
	ListingPending bool
	ListingErr     error
}

// HomeEvent is anything that moves a HomeState forward.
type HomeEvent interface{ homeEvent() }

// HomeLoaded carries the outcome of the home aggregation.
type HomeLoaded struct {
	View *models.HomeView
	Err  error
}

// FavoritesResolved carries the favorites that resolved for this render.
type FavoritesResolved struct {
	Movies []models.MovieSummary
}

// SearchRequested records a query change before its lookup is issued.
type SearchRequested struct {
	Token string
	Query string
}

// GenreSelected records a genre change before its lookup is issued. A nil
// GenreID selects all genres.
type GenreSelected struct {
	Token   string
	GenreID *int
}

// ListingResolved carries the outcome of a search or genre lookup.
type ListingResolved struct {
	Token   string
	Search  bool
	Listing *models.Listing
	Err     error
}

// SuggestionPicked clears the search box after a suggestion was chosen.
type SuggestionPicked struct{}

// RotationTicked advances the background carousel.
type RotationTicked struct{}

func (HomeLoaded) homeEvent()        {}
func (FavoritesResolved) homeEvent() {}
func (SearchRequested) homeEvent()   {}
func (GenreSelected) homeEvent()     {}
func (ListingResolved) homeEvent()   {}
func (SuggestionPicked) homeEvent()  {}
func (RotationTicked) homeEvent()    {}

// NewHomeState returns the loading state of a fresh session.
func NewHomeState(sessionID string) HomeState {
	return HomeState{SessionID: sessionID, Phase: PhaseLoading}
}

// ReduceHome applies ev to s and returns the next state. It never mutates
// slices held by s.
func ReduceHome(s HomeState, ev HomeEvent) HomeState {
	switch ev := ev.(type) {
	case HomeLoaded:
		if ev.Err != nil {
			s.Phase = PhaseError
			s.Err = ev.Err
			return s
		}
		s.Phase = PhaseReady
		s.Err = nil
		if !s.listingShown() {
			s.Movies = ev.View.Movies
		}
		s.Genres = ev.View.Genres
		s.Featured = ev.View.Featured
		s.Backdrops = ev.View.Backdrops
		s.BackgroundIndex = 0

	case FavoritesResolved:
		s.Favorites = ev.Movies

	case SearchRequested:
		s.Query = ev.Query
		s.ListingToken = ev.Token
		s.ListingPending = true
		if isBlank(ev.Query) {
			s.Suggestions = nil
		}

	case GenreSelected:
		s.SelectedGenre = ev.GenreID
		s.ListingToken = ev.Token
		s.ListingPending = true

	case ListingResolved:
		if ev.Token != s.ListingToken {
			return s
		}
		s.ListingPending = false
		if ev.Err != nil {
			s.ListingErr = ev.Err
			return s
		}
		s.ListingErr = nil
		s.Movies = ev.Listing.Movies
		if ev.Search {
			s.Suggestions = ev.Listing.Suggestions
		}

	case SuggestionPicked:
		s.Query = ""
		s.Suggestions = nil

	case RotationTicked:
		if n := len(s.Backdrops); n > 0 {
			s.BackgroundIndex = (s.BackgroundIndex + 1) % n
		}
	}
	return s
}

// listingShown reports whether Movies already holds the result of the
// newest search or genre request.
func (s HomeState) listingShown() bool {
	return s.ListingToken != "" && !s.ListingPending && s.ListingErr == nil
}

// DetailState is one detail-screen session.
type DetailState struct {
	SessionID string
	Kind      models.MediaKind
	ID        int
	Phase     Phase
	Err       error

	Movie           *models.MovieDetail
	TrailerKey      string
	Providers       []string
	Similar         []models.MovieSummary
	TrailerStatus   models.SectionStatus
	ProvidersStatus models.SectionStatus
	SimilarStatus   models.SectionStatus

	IsFavorite bool
}

// DetailEvent is anything that moves a DetailState forward.
type DetailEvent interface{ detailEvent() }

// SectionResolved wraps one settled section of the detail aggregation.
type SectionResolved struct {
	Update service.DetailUpdate
}

// FavoriteChanged records the favorites membership of the shown item.
type FavoriteChanged struct {
	IsFavorite bool
}

func (SectionResolved) detailEvent() {}
func (FavoriteChanged) detailEvent() {}

// NewDetailState returns the loading state of a fresh detail session.
func NewDetailState(sessionID string, kind models.MediaKind, id int) DetailState {
	return DetailState{
		SessionID:       sessionID,
		Kind:            kind,
		ID:              id,
		Phase:           PhaseLoading,
		TrailerStatus:   models.SectionPending,
		ProvidersStatus: models.SectionPending,
		SimilarStatus:   models.SectionPending,
	}
}

// ReduceDetail applies ev to s and returns the next state. Once the item
// lookup has failed no section is shown.
func ReduceDetail(s DetailState, ev DetailEvent) DetailState {
	switch ev := ev.(type) {
	case FavoriteChanged:
		s.IsFavorite = ev.IsFavorite

	case SectionResolved:
		if s.Phase == PhaseError {
			return s
		}
		u := ev.Update
		switch u.Section {
		case service.SectionDetail:
			if u.Err != nil {
				fatal := NewDetailState(s.SessionID, s.Kind, s.ID)
				fatal.Phase = PhaseError
				fatal.Err = u.Err
				fatal.IsFavorite = s.IsFavorite
				return fatal
			}
			s.Phase = PhaseReady
			s.Movie = withSections(u.Detail, s.TrailerKey, s.Providers)

		case service.SectionTrailer:
			s.TrailerStatus = status(u.Err)
			s.TrailerKey = u.TrailerKey
			s.Movie = withSections(s.Movie, s.TrailerKey, s.Providers)

		case service.SectionProviders:
			s.ProvidersStatus = status(u.Err)
			s.Providers = u.Providers
			s.Movie = withSections(s.Movie, s.TrailerKey, s.Providers)

		case service.SectionSimilar:
			s.SimilarStatus = status(u.Err)
			s.Similar = u.Similar
		}
	}
	return s
}

func withSections(m *models.MovieDetail, trailerKey string, providers []string) *models.MovieDetail {
	if m == nil {
		return nil
	}
	next := *m
	next.TrailerKey = trailerKey
	next.Providers = providers
	return &next
}

func status(err error) models.SectionStatus {
	if err != nil {
		return models.SectionUnavailable
	}
	return models.SectionReady
}
