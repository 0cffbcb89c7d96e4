package geo

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"weather-widget/internal/locations"
)

// SuggestKind classifies the outcome of a suggestion lookup.
type SuggestKind int

const (
	// SuggestEmpty: blank or whitespace-only input. No lookup happens;
	// the suggestion panel hides silently.
	SuggestEmpty SuggestKind = iota
	// SuggestNotFound: the geocoding service had no matches.
	SuggestNotFound
	// SuggestOK: candidates are available, in service order.
	SuggestOK
)

// SuggestResult is the outcome of Resolver.Suggest.
type SuggestResult struct {
	Kind       SuggestKind
	Candidates []locations.Location
}

// Resolver turns free-text input into ranked location candidates.
type Resolver struct {
	geocoder Geocoder
	log      *zap.Logger
}

func NewResolver(geocoder Geocoder, log *zap.Logger) *Resolver {
	return &Resolver{geocoder: geocoder, log: log}
}

// Suggest resolves query into up to MaxSuggestions candidates. A blank
// query short-circuits to SuggestEmpty without touching the network.
// Transport-level failures propagate as errors so callers can show a
// "service unavailable" state rather than "city not found".
func (r *Resolver) Suggest(ctx context.Context, query string) (SuggestResult, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return SuggestResult{Kind: SuggestEmpty}, nil
	}

	cands, err := r.geocoder.Search(ctx, q)
	if errors.Is(err, ErrNoMatch) {
		return SuggestResult{Kind: SuggestNotFound}, nil
	}
	if err != nil {
		r.log.Warn("geocoding lookup failed", zap.String("query", q), zap.Error(err))
		return SuggestResult{}, err
	}

	return SuggestResult{Kind: SuggestOK, Candidates: cands}, nil
}
