package viewstate

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"movie-discovery-explorer/internal/models"
)

// ErrSuperseded is returned by a listing action whose result was dropped
// because a newer search or genre selection was issued meanwhile.
var ErrSuperseded = errors.New("superseded by a newer request")

// HomeSource is the aggregation the home screen is built from.
type HomeSource interface {
	Home(ctx context.Context) (*models.HomeView, error)
	ResolveFavorites(ctx context.Context, ids []int) []models.MovieSummary
	Search(ctx context.Context, query string) (*models.Listing, error)
	ByGenre(ctx context.Context, genreID *int) (*models.Listing, error)
}

// FavoriteLister reads the favorites set.
type FavoriteLister interface {
	List(ctx context.Context) []int
}

// HomeController owns one home-screen session: its state, the background
// rotation timer and the listing token. Create one per screen mount and
// Close it when the screen goes away.
type HomeController struct {
	source    HomeSource
	favorites FavoriteLister
	log       *zap.Logger
	rotation  *rotation

	mu     sync.Mutex
	state  HomeState
	closed bool
	subs   broadcaster[HomeState]
}

// NewHomeController creates a session in the loading phase. interval is
// the background rotation period.
func NewHomeController(source HomeSource, favorites FavoriteLister, interval time.Duration, log *zap.Logger) *HomeController {
	sessionID := uuid.NewString()
	c := &HomeController{
		source:    source,
		favorites: favorites,
		log:       log.With(zap.String("session", sessionID)),
		state:     NewHomeState(sessionID),
	}
	c.rotation = newRotation(interval, c.Tick)
	return c
}

// Load runs the home aggregation, then resolves favorites. The rotation
// timer starts once there is at least one backdrop.
func (c *HomeController) Load(ctx context.Context) error {
	view, err := c.source.Home(ctx)
	c.dispatch(HomeLoaded{View: view, Err: err})
	if err != nil {
		return err
	}
	c.log.Info("home screen loaded",
		zap.Int("movies", len(view.Movies)),
		zap.Int("backdrops", len(view.Backdrops)),
	)

	if len(view.Backdrops) > 0 {
		c.startRotation()
	}

	favorites := c.source.ResolveFavorites(ctx, c.favorites.List(ctx))
	c.dispatch(FavoritesResolved{Movies: favorites})
	return nil
}

// Search sets the query and replaces the listing with its results. If a
// newer listing request was issued before this one finished, its result is
// dropped and ErrSuperseded is returned.
func (c *HomeController) Search(ctx context.Context, query string) error {
	token := uuid.NewString()
	c.dispatch(SearchRequested{Token: token, Query: query})

	listing, err := c.source.Search(ctx, query)
	return c.resolveListing(ListingResolved{Token: token, Search: true, Listing: listing, Err: err})
}

// SelectGenre switches the genre filter (nil for all) and reloads the
// listing for it. Superseded results are dropped as in Search.
func (c *HomeController) SelectGenre(ctx context.Context, genreID *int) error {
	token := uuid.NewString()
	c.dispatch(GenreSelected{Token: token, GenreID: genreID})

	listing, err := c.source.ByGenre(ctx, genreID)
	return c.resolveListing(ListingResolved{Token: token, Listing: listing, Err: err})
}

// PickSuggestion clears the query after the visitor chose a suggestion.
func (c *HomeController) PickSuggestion() {
	c.dispatch(SuggestionPicked{})
}

// Tick advances the background rotation by one step.
func (c *HomeController) Tick() {
	c.dispatch(RotationTicked{})
}

// State returns the current snapshot.
func (c *HomeController) State() HomeState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Updates returns a channel receiving the newest snapshot after every
// change. It is closed by Close.
func (c *HomeController) Updates() <-chan HomeState {
	return c.subs.subscribe()
}

// Close ends the session: the rotation timer is stopped and no further
// state changes are applied or published.
func (c *HomeController) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.rotation.Stop()
	c.subs.close()
	c.log.Debug("home session closed")
}

func (c *HomeController) resolveListing(ev ListingResolved) error {
	next, applied := c.dispatch(ev)
	if !applied || next.ListingToken != ev.Token {
		return ErrSuperseded
	}
	if ev.Err != nil {
		c.log.Warn("listing lookup failed", zap.Error(ev.Err))
	}
	return ev.Err
}

func (c *HomeController) startRotation() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.rotation.Start()
}

// dispatch reduces ev into the state and publishes the result. It reports
// false once the session is closed.
func (c *HomeController) dispatch(ev HomeEvent) (HomeState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return c.state, false
	}
	c.state = ReduceHome(c.state, ev)
	c.subs.publish(c.state)
	return c.state, true
}
