// Package lunch implements the cafe selection algorithm: a weather opinion,
// a food taste and the Officer that combines them with visit history and
// weekday rules into a ranked list of cafes.
package lunch

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"

	"lunchofficer/internal/types"
)

// Score weights.
const (
	MenuWeight         = 1
	WeatherWeight      = -15
	VisitedWeight      = -3
	PreferredDayWeight = 10
)

// NoIdea is the choice reported when every cafe was excluded.
const NoIdea = "No idea"

// UnknownWeatherPolicy decides how a request without a weather reading is scored.
type UnknownWeatherPolicy string

const (
	// UnknownWeatherBad applies the distance penalty when weather is unknown.
	UnknownWeatherBad UnknownWeatherPolicy = "bad"
	// UnknownWeatherGood ignores distance when weather is unknown.
	UnknownWeatherGood UnknownWeatherPolicy = "good"
)

// Exclusion reasons reported in the decision trace.
const (
	excludedClosed      = "closed_weekday"
	excludedOncePerWeek = "once_per_week_used"
)

// Request is the complete, immutable input of one decision.
type Request struct {
	Weekday     types.Weekday
	Weather     *types.WeatherReading
	Preferences types.PreferenceTable
	Cafes       types.Catalog
	Lunched     types.VisitHistory
}

// Validate checks the weekday range, the weather reading when present, the
// preference names and every cafe in the catalog.
func (r Request) Validate() error {
	if !r.Weekday.Valid() {
		return types.NewAppErrorWithDetails(
			types.ErrCodeValidationInvalidWeekday,
			"weekday must be between 0 (Monday) and 6 (Sunday)",
			nil,
			map[string]any{"weekday": int(r.Weekday)},
		)
	}
	checks := []types.Validator{r.Preferences, r.Cafes}
	if r.Weather != nil {
		checks = append([]types.Validator{*r.Weather}, checks...)
	}
	return types.ValidateAll(checks...)
}

// CafeScore is the total score of one cafe with its components.
type CafeScore struct {
	Name              string  `json:"name"`
	Score             float64 `json:"score"`
	Menu              int     `json:"menu"`
	WeatherPenalty    float64 `json:"weather_penalty"`
	VisitPenalty      int     `json:"visit_penalty"`
	PreferredDayBonus int     `json:"preferred_day_bonus"`
}

// Officer ranks cafes. It holds configuration only, so a single Officer may
// serve concurrent decisions.
type Officer struct {
	policy UnknownWeatherPolicy
	logger *slog.Logger
}

// ParseUnknownWeatherPolicy converts a configuration value into a policy.
// The empty string selects UnknownWeatherBad.
func ParseUnknownWeatherPolicy(s string) (UnknownWeatherPolicy, error) {
	switch p := UnknownWeatherPolicy(s); p {
	case "":
		return UnknownWeatherBad, nil
	case UnknownWeatherBad, UnknownWeatherGood:
		return p, nil
	default:
		return "", fmt.Errorf("unknown weather policy %q: want %q or %q", s, UnknownWeatherBad, UnknownWeatherGood)
	}
}

// NewOfficer creates an Officer. Any policy other than UnknownWeatherGood
// scores unknown weather as bad.
func NewOfficer(policy UnknownWeatherPolicy, logger *slog.Logger) *Officer {
	if policy != UnknownWeatherGood {
		policy = UnknownWeatherBad
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Officer{
		policy: policy,
		logger: logger,
	}
}

// Policy returns the unknown-weather policy in effect.
func (o *Officer) Policy() UnknownWeatherPolicy {
	return o.policy
}

// Score validates the request and returns the score of every cafe that is
// not excluded, best first. Equal scores are ordered by cafe name.
//
// Exclusions (no score computed):
//  1. The cafe is closed on the request weekday.
//  2. The cafe may be visited once per week and was already visited.
func (o *Officer) Score(ctx context.Context, req Request) ([]CafeScore, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	logger := types.LoggerFromContext(ctx, o.logger)

	opinion := NewWeatherOpinion()
	if req.Weather != nil {
		opinion.SetWeather(*req.Weather)
	}
	badWeather := o.isBadWeather(opinion)
	taste := NewFoodTaste().SetPreferences(req.Preferences)
	lunched := req.Lunched.Counts()

	for _, u := range unmatchedVisits(lunched, req.Cafes) {
		logger.Warn("visit history names unknown cafe",
			"cafe", u.Name,
			"visits", u.Visits,
			"suggestion", u.Suggestion,
		)
	}

	scores := make([]CafeScore, 0, len(req.Cafes))
	for _, name := range req.Cafes.Names() {
		cafe := req.Cafes[name]
		visits := lunched[name]

		if cafe.ClosedOn(req.Weekday) {
			logger.Debug("cafe excluded", "cafe", name, "reason", excludedClosed)
			continue
		}
		if cafe.OncePerWeek && visits > 0 {
			logger.Debug("cafe excluded", "cafe", name, "reason", excludedOncePerWeek)
			continue
		}

		s := CafeScore{
			Name: name,
			Menu: MenuWeight * taste.Rate(cafe.Menu),
		}
		if badWeather {
			s.WeatherPenalty = WeatherWeight * *cafe.Distance
		}
		s.VisitPenalty = VisitedWeight * visits
		if cafe.PrefersDay(req.Weekday) {
			s.PreferredDayBonus = PreferredDayWeight
		}
		s.Score = float64(s.Menu) + s.WeatherPenalty + float64(s.VisitPenalty) + float64(s.PreferredDayBonus)

		logger.Debug("cafe scored",
			"cafe", name,
			"score", s.Score,
			"menu", s.Menu,
			"weather_penalty", s.WeatherPenalty,
			"visit_penalty", s.VisitPenalty,
			"preferred_day_bonus", s.PreferredDayBonus,
		)
		scores = append(scores, s)
	}

	slices.SortStableFunc(scores, func(a, b CafeScore) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})

	logger.Debug("decision ranked",
		"weekday", req.Weekday.String(),
		"bad_weather", badWeather,
		"candidates", len(req.Cafes),
		"ranked", len(scores),
	)
	return scores, nil
}

// Decide returns the names of the eligible cafes, most preferred first.
func (o *Officer) Decide(ctx context.Context, req Request) ([]string, error) {
	scores, err := o.Score(ctx, req)
	if err != nil {
		return nil, err
	}
	return Ranking(scores), nil
}

// DecideOne returns the most preferred cafe, or NoIdea when none is eligible.
func (o *Officer) DecideOne(ctx context.Context, req Request) (string, error) {
	scores, err := o.Score(ctx, req)
	if err != nil {
		return "", err
	}
	return Choice(scores), nil
}

// Ranking returns the cafe names of scores in order.
func Ranking(scores []CafeScore) []string {
	names := make([]string, len(scores))
	for i, s := range scores {
		names[i] = s.Name
	}
	return names
}

// Choice returns the first cafe of a ranked score list, or NoIdea when the
// list is empty.
func Choice(scores []CafeScore) string {
	if len(scores) == 0 {
		return NoIdea
	}
	return scores[0].Name
}

// isBadWeather resolves the opinion into the weather penalty switch,
// applying the configured policy when the weather is unknown.
func (o *Officer) isBadWeather(opinion *WeatherOpinion) bool {
	positive, known := opinion.IsPositive()
	if known {
		return !positive
	}
	return o.policy != UnknownWeatherGood
}
