package viewstate

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"movie-discovery-explorer/internal/models"
	"movie-discovery-explorer/internal/service"
)

// DetailSource is the aggregation the detail screen is built from.
type DetailSource interface {
	Detail(ctx context.Context, kind models.MediaKind, id int, observe service.DetailObserver) (*models.DetailView, error)
}

// FavoriteToggler reads and flips favorites membership.
type FavoriteToggler interface {
	Contains(ctx context.Context, id int) bool
	Toggle(ctx context.Context, id int) (bool, error)
}

// DetailController owns one detail-screen session.
type DetailController struct {
	source    DetailSource
	favorites FavoriteToggler
	log       *zap.Logger

	mu     sync.Mutex
	state  DetailState
	closed bool
	subs   broadcaster[DetailState]
}

// NewDetailController creates a session for (kind, id) in the loading phase.
func NewDetailController(source DetailSource, favorites FavoriteToggler, kind models.MediaKind, id int, log *zap.Logger) *DetailController {
	sessionID := uuid.NewString()
	return &DetailController{
		source:    source,
		favorites: favorites,
		log: log.With(
			zap.String("session", sessionID),
			zap.String("kind", string(kind)),
			zap.Int("id", id),
		),
		state: NewDetailState(sessionID, kind, id),
	}
}

// Load reads favorites membership and runs the detail aggregation. Each
// section lands in the state as soon as it settles. Only a failed item
// lookup is returned as an error.
func (c *DetailController) Load(ctx context.Context) error {
	s := c.State()
	c.dispatch(FavoriteChanged{IsFavorite: c.favorites.Contains(ctx, s.ID)})

	_, err := c.source.Detail(ctx, s.Kind, s.ID, func(u service.DetailUpdate) {
		c.dispatch(SectionResolved{Update: u})
	})
	return err
}

// ToggleFavorite flips the shown item's membership. No catalog lookup is
// made. On a store failure the state keeps its previous value.
func (c *DetailController) ToggleFavorite(ctx context.Context) (bool, error) {
	s := c.State()
	on, err := c.favorites.Toggle(ctx, s.ID)
	if err != nil {
		c.log.Error("failed to toggle favorite", zap.Error(err))
		return s.IsFavorite, err
	}
	c.dispatch(FavoriteChanged{IsFavorite: on})
	return on, nil
}

// State returns the current snapshot.
func (c *DetailController) State() DetailState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Updates returns a channel receiving the newest snapshot after every
// change. It is closed by Close.
func (c *DetailController) Updates() <-chan DetailState {
	return c.subs.subscribe()
}

// Close ends the session.
func (c *DetailController) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.subs.close()
}

func (c *DetailController) dispatch(ev DetailEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.state = ReduceDetail(c.state, ev)
	c.subs.publish(c.state)
}
