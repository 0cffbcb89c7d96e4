// Package widget holds the widget's UI state: the suggestion-panel
// state machine, the per-tab session registry, and the controller that
// wires user events to the location store and the forecast aggregator.
package widget

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"weather-widget/internal/forecast"
	"weather-widget/internal/geo"
	"weather-widget/internal/locations"
)

// PanelState is the suggestion panel's visibility state.
type PanelState string

const (
	PanelHidden  PanelState = "hidden"
	PanelVisible PanelState = "visible"
)

// Localized user-facing messages.
const (
	NotFoundMessage           = "Город не найден"
	ServiceUnavailableMessage = "Сервис геокодирования недоступен, попробуйте позже"
	GeolocationDeniedMessage  = "Геолокация отклонена. Введите город вручную."
)

// ErrSessionNotFound is returned for unknown session identifiers.
var ErrSessionNotFound = errors.New("widget session not found")

// ErrBadSelection is returned when a selected suggestion index is out
// of range for the currently displayed list.
var ErrBadSelection = errors.New("selected suggestion does not exist")

// session is one widget instance (one browser tab). Its mutex
// serializes events, the port of the browser's single-threaded event
// dispatch.
type session struct {
	id string

	mu          sync.Mutex
	panel       PanelState
	input       string
	errText     string
	suggestions []locations.Location
}

// View is the session state handed to the UI layer for rendering.
type View struct {
	SessionID   string               `json:"sessionId"`
	Panel       PanelState           `json:"panel"`
	Input       string               `json:"input"`
	Error       string               `json:"error"`
	Suggestions []locations.Location `json:"suggestions"`
	Cards       []forecast.Card      `json:"cards"`
}

// Controller owns the tracked-location store, the rendered cards, and
// all widget sessions. The tracked set and its cards are shared; panel
// state is per session.
type Controller struct {
	store      *locations.Store
	resolver   *geo.Resolver
	aggregator *forecast.Aggregator
	geolocator geo.Geolocator
	log        *zap.Logger

	cardsMu sync.RWMutex
	cards   []forecast.Card

	sessMu   sync.RWMutex
	sessions map[string]*session

	// notice is the error text pre-filled into new sessions, set when
	// the geolocation fallback was refused at startup.
	notice string
}

func NewController(
	store *locations.Store,
	resolver *geo.Resolver,
	aggregator *forecast.Aggregator,
	geolocator geo.Geolocator,
	log *zap.Logger,
) *Controller {
	return &Controller{
		store:      store,
		resolver:   resolver,
		aggregator: aggregator,
		geolocator: geolocator,
		log:        log,
		sessions:   make(map[string]*session),
	}
}

// Startup restores the tracked set from storage. Only a first run (no
// persisted key at all) falls back to a one-shot geolocation fix; a
// persisted empty list stays empty. Refusal leaves the set empty and
// shows the manual-entry prompt. Every path ends with an initial render
// of all cards.
func (c *Controller) Startup(ctx context.Context) error {
	_, found, err := c.store.Restore()
	if err != nil {
		return err
	}

	if !found {
		loc, err := c.geolocator.Locate(ctx)
		if err != nil {
			c.log.Info("geolocation refused, waiting for manual input", zap.Error(err))
			c.notice = GeolocationDeniedMessage
			return nil
		}
		if err := c.store.ReplaceAll([]locations.Location{loc}); err != nil {
			return err
		}
	}

	c.Reload(ctx)
	return nil
}

// CreateSession registers a new widget session and returns its view.
func (c *Controller) CreateSession() View {
	s := &session{
		id:      uuid.NewString(),
		panel:   PanelHidden,
		errText: c.notice,
	}

	c.sessMu.Lock()
	c.sessions[s.id] = s
	c.sessMu.Unlock()

	return c.view(s)
}

func (c *Controller) session(id string) (*session, error) {
	c.sessMu.RLock()
	s, ok := c.sessions[id]
	c.sessMu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// InputChanged handles a keystroke in the city input. The suggestion
// list and error text are replaced wholesale on every change.
func (c *Controller) InputChanged(ctx context.Context, sessionID, query string) (View, error) {
	s, err := c.session(sessionID)
	if err != nil {
		return View{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.input = query
	s.errText = ""
	s.suggestions = nil

	res, err := c.resolver.Suggest(ctx, query)
	if err != nil {
		// Transport failure: distinct from "city not found". The panel
		// hides but the input keeps its text.
		s.panel = PanelHidden
		s.errText = ServiceUnavailableMessage
		return c.viewLocked(s), err
	}

	switch res.Kind {
	case geo.SuggestEmpty:
		s.panel = PanelHidden
	case geo.SuggestNotFound:
		s.panel = PanelHidden
		s.errText = NotFoundMessage
	default:
		s.suggestions = res.Candidates
		s.panel = PanelVisible
	}

	return c.viewLocked(s), nil
}

// Select handles a click on suggestion index i: the candidate joins the
// tracked set (duplicates are a silent no-op), the input and error text
// clear, the panel hides, and all cards reload.
func (c *Controller) Select(ctx context.Context, sessionID string, i int) (View, error) {
	s, err := c.session(sessionID)
	if err != nil {
		return View{}, err
	}

	s.mu.Lock()
	if i < 0 || i >= len(s.suggestions) {
		v := c.viewLocked(s)
		s.mu.Unlock()
		return v, ErrBadSelection
	}
	chosen := s.suggestions[i]

	s.input = ""
	s.errText = ""
	s.suggestions = nil
	s.panel = PanelHidden
	s.mu.Unlock()

	added, err := c.store.Add(chosen)
	if err != nil {
		return c.view(s), err
	}
	if added {
		c.Reload(ctx)
	}

	return c.view(s), nil
}

// Dismiss handles a click outside both the input and the panel.
func (c *Controller) Dismiss(sessionID string) (View, error) {
	s, err := c.session(sessionID)
	if err != nil {
		return View{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c.hideLocked(s)
	return c.viewLocked(s), nil
}

// EnterPressed handles the Enter key while the input has focus. Same
// transition as an outside click.
func (c *Controller) EnterPressed(sessionID string) (View, error) {
	return c.Dismiss(sessionID)
}

// hideLocked hides the panel. Dismissing a failed search also resets
// the field: when the displayed error is exactly the "city not found"
// text, input and error clear together.
func (c *Controller) hideLocked(s *session) {
	s.panel = PanelHidden
	s.suggestions = nil
	if s.errText == NotFoundMessage {
		s.input = ""
		s.errText = ""
	}
}

// AddLocation appends a location to the tracked set outside the
// suggestion flow. Duplicates are a silent no-op; an actual insertion
// re-renders.
func (c *Controller) AddLocation(ctx context.Context, loc locations.Location) (bool, error) {
	added, err := c.store.Add(loc)
	if err != nil {
		return false, err
	}
	if added {
		c.Reload(ctx)
	}
	return added, nil
}

// Delete removes a location by name and re-renders. Removal of an
// absent name still persists and still rebuilds the cards.
func (c *Controller) Delete(ctx context.Context, name string) error {
	if err := c.store.Remove(name); err != nil {
		return err
	}
	c.Reload(ctx)
	return nil
}

// ResetAll drops the whole tracked set and its persisted key, putting
// the widget back into its first-run state, then re-renders the (now
// empty) card list.
func (c *Controller) ResetAll(ctx context.Context) error {
	if err := c.store.Clear(); err != nil {
		return err
	}
	c.Reload(ctx)
	return nil
}

// Reload rebuilds every card from scratch, sequentially and in tracked
// order.
func (c *Controller) Reload(ctx context.Context) {
	cards := c.aggregator.LoadAll(ctx, c.store.List())

	c.cardsMu.Lock()
	c.cards = cards
	c.cardsMu.Unlock()
}

// Cards returns the cards from the last render pass.
func (c *Controller) Cards() []forecast.Card {
	c.cardsMu.RLock()
	defer c.cardsMu.RUnlock()
	out := make([]forecast.Card, len(c.cards))
	copy(out, c.cards)
	return out
}

// Locations returns the tracked set.
func (c *Controller) Locations() []locations.Location {
	return c.store.List()
}

func (c *Controller) view(s *session) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.viewLocked(s)
}

func (c *Controller) viewLocked(s *session) View {
	return View{
		SessionID:   s.id,
		Panel:       s.panel,
		Input:       s.input,
		Error:       s.errText,
		Suggestions: append([]locations.Location(nil), s.suggestions...),
		Cards:       c.Cards(),
	}
}
