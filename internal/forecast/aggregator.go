package forecast

import (
	"context"
	"time"

	"go.uber.org/zap"

	"weather-widget/internal/locations"
)

// WindowDays is the forecast window: today plus two following days.
const WindowDays = 3

// LoadFailedMessage is the localized text shown on a degraded card.
const LoadFailedMessage = "ошибка загрузки"

// Card is the rendered forecast for one tracked location. A card with
// a non-empty Error is degraded: it carries only the location name and
// the failure notice.
type Card struct {
	Name  string        `json:"name"`
	Days  []ForecastDay `json:"days,omitempty"`
	Error string        `json:"error,omitempty"`
}

// Aggregator drives fetch-and-render for the tracked locations.
type Aggregator struct {
	client Client
	log    *zap.Logger
	now    func() time.Time
}

func NewAggregator(client Client, log *zap.Logger) *Aggregator {
	return &Aggregator{client: client, log: log, now: time.Now}
}

// LoadAll fetches and renders one card per location, strictly
// sequentially and in input order. Sequential by policy: awaiting each
// fetch before the next keeps card order equal to location order
// without reordering completions. A single location's failure yields a
// degraded card and never aborts the rest of the pass.
func (a *Aggregator) LoadAll(ctx context.Context, locs []locations.Location) []Card {
	today := a.now()
	start := today.Format("2006-01-02")
	end := today.AddDate(0, 0, WindowDays-1).Format("2006-01-02")

	cards := make([]Card, 0, len(locs))
	for _, loc := range locs {
		daily, err := a.client.FetchDaily(ctx, loc.Lat, loc.Lon, start, end)
		if err != nil {
			a.log.Warn("forecast load failed",
				zap.String("location", loc.Name),
				zap.Error(err))
			cards = append(cards, Card{Name: loc.Name, Error: LoadFailedMessage})
			continue
		}
		cards = append(cards, Card{Name: loc.Name, Days: BuildDays(daily)})
	}
	return cards
}
