// Package handlers contains the HTTP handler implementations for the lunch
// officer API.
//
// This file implements the decision endpoints:
//   - Cafe decision (POST /v1/decisions)
//   - Weather opinion (POST /v1/weather/opinion)
//   - Menu rating (POST /v1/menus/rate)
//   - Catalog listing (GET /v1/cafes)
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"lunchofficer/internal/catalog"
	"lunchofficer/internal/core"
	"lunchofficer/internal/lunch"
	"lunchofficer/internal/types"
)

// DecisionEngine defines the contract for the decision handler. Satisfied by
// *lunch.Officer.
type DecisionEngine interface {
	Score(ctx context.Context, req lunch.Request) ([]lunch.CafeScore, error)
}

// DecisionRequest is the body of POST /v1/decisions. Omitted preferences and
// cafes fall back to the loaded catalog; an omitted weekday is today in the
// configured time zone; an omitted weather reading is unknown weather.
type DecisionRequest struct {
	Weekday     *types.Weekday        `json:"weekday,omitempty"`
	Weather     *types.WeatherInput   `json:"weather,omitempty" validate:"-"`
	Lunched     types.VisitHistory    `json:"lunched" validate:"required"`
	Preferences types.PreferenceTable `json:"preferences,omitempty"`
	Cafes       types.Catalog         `json:"cafes,omitempty"`
}

// DecisionResponse is the data payload of a decision.
type DecisionResponse struct {
	Choice  string            `json:"choice"`
	Ranking []string          `json:"ranking"`
	Weekday string            `json:"weekday"`
	Scores  []lunch.CafeScore `json:"scores,omitempty"`
}

// WeatherOpinionResponse is the data payload of POST /v1/weather/opinion.
type WeatherOpinionResponse struct {
	Positive bool `json:"positive"`
	Known    bool `json:"known"`
}

// RateMenuRequest is the body of POST /v1/menus/rate.
type RateMenuRequest struct {
	Menu        []string              `json:"menu" validate:"required"`
	Preferences types.PreferenceTable `json:"preferences,omitempty"`
}

// RateMenuResponse is the data payload of POST /v1/menus/rate.
type RateMenuResponse struct {
	Rating int `json:"rating"`
}

// CafeEntry is one item of the catalog listing.
type CafeEntry struct {
	Name string `json:"name"`
	types.CafeDetails
}

// DecisionHandler maps HTTP requests to the decision engine.
type DecisionHandler struct {
	engine    DecisionEngine
	defaults  *catalog.File
	clock     types.Clock
	location  *time.Location
	validator *core.Validator
	logger    *slog.Logger
}

// NewDecisionHandler creates a new DecisionHandler. defaults may be nil, in
// which case every decision request must carry its own cafes.
func NewDecisionHandler(
	engine DecisionEngine,
	defaults *catalog.File,
	clock types.Clock,
	location *time.Location,
	val *core.Validator,
	logger *slog.Logger,
) *DecisionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if clock == nil {
		clock = types.RealClock{}
	}
	if location == nil {
		location = time.UTC
	}
	if val == nil {
		val = core.NewValidator(logger)
	}
	return &DecisionHandler{
		engine:    engine,
		defaults:  defaults,
		clock:     clock,
		location:  location,
		validator: val,
		logger:    logger,
	}
}

// RegisterRoutes mounts the decision endpoints onto the router.
func (h *DecisionHandler) RegisterRoutes(r chi.Router) {
	r.Post("/decisions", h.HandleDecide)
	r.Post("/weather/opinion", h.HandleWeatherOpinion)
	r.Post("/menus/rate", h.HandleRateMenu)
	r.Get("/cafes", h.HandleListCafes)
}

// HandleDecide handles POST /v1/decisions.
//  1. Decode and validate the body.
//  2. Fill omitted weekday, preferences and cafes.
//  3. Score the cafes; include the breakdown when explain=true.
func (h *DecisionHandler) HandleDecide(w http.ResponseWriter, r *http.Request) {
	explain, err := parseBoolParam(r, "explain")
	if err != nil {
		core.Error(w, r, err)
		return
	}

	var body DecisionRequest
	if err := core.DecodeJSON(w, r, &body); err != nil {
		core.Error(w, r, err)
		return
	}
	if err := h.validator.ValidateStruct(body, types.ErrCodeValidationMissingField, "lunched is required"); err != nil {
		core.Error(w, r, err)
		return
	}

	req := lunch.Request{
		Lunched:     body.Lunched,
		Preferences: body.Preferences,
		Cafes:       body.Cafes,
	}
	if body.Weather != nil {
		if err := body.Weather.Validate(); err != nil {
			core.Error(w, r, err)
			return
		}
		reading := body.Weather.Reading()
		req.Weather = &reading
	}
	if body.Weekday != nil {
		req.Weekday = *body.Weekday
	} else {
		req.Weekday = types.WeekdayFromTime(h.clock.Now().In(h.location).Weekday())
	}
	if req.Preferences == nil && h.defaults != nil {
		req.Preferences = h.defaults.Preferences
	}
	if req.Cafes == nil {
		if h.defaults == nil {
			core.Error(w, r, types.NewAppError(
				types.ErrCodeValidationMissingField,
				"cafes are required when no catalog is loaded",
				nil,
			))
			return
		}
		req.Cafes = h.defaults.Cafes
	}

	scores, err := h.engine.Score(r.Context(), req)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	resp := DecisionResponse{
		Choice:  lunch.Choice(scores),
		Ranking: lunch.Ranking(scores),
		Weekday: req.Weekday.String(),
	}
	if explain {
		resp.Scores = scores
	}

	types.LoggerFromContext(r.Context(), h.logger).Info("lunch decided",
		"choice", resp.Choice,
		"weekday", resp.Weekday,
		"candidates", len(req.Cafes),
		"weather_known", req.Weather != nil,
	)

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: resp})
}

// HandleWeatherOpinion handles POST /v1/weather/opinion.
func (h *DecisionHandler) HandleWeatherOpinion(w http.ResponseWriter, r *http.Request) {
	var in types.WeatherInput
	if err := core.DecodeJSON(w, r, &in); err != nil {
		core.Error(w, r, err)
		return
	}
	if err := in.Validate(); err != nil {
		core.Error(w, r, err)
		return
	}

	positive, known := lunch.NewWeatherOpinion().SetWeather(in.Reading()).IsPositive()
	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: WeatherOpinionResponse{
		Positive: positive,
		Known:    known,
	}})
}

// HandleRateMenu handles POST /v1/menus/rate. Omitted preferences fall back
// to the catalog defaults.
func (h *DecisionHandler) HandleRateMenu(w http.ResponseWriter, r *http.Request) {
	var body RateMenuRequest
	if err := core.DecodeJSON(w, r, &body); err != nil {
		core.Error(w, r, err)
		return
	}
	if err := h.validator.ValidateStruct(body, types.ErrCodeValidationMissingField, "menu is required"); err != nil {
		core.Error(w, r, err)
		return
	}

	prefs := body.Preferences
	if prefs == nil && h.defaults != nil {
		prefs = h.defaults.Preferences
	}
	if err := prefs.Validate(); err != nil {
		core.Error(w, r, err)
		return
	}

	rating := lunch.NewFoodTaste().SetPreferences(prefs).Rate(body.Menu)
	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: RateMenuResponse{Rating: rating}})
}

// HandleListCafes handles GET /v1/cafes.
func (h *DecisionHandler) HandleListCafes(w http.ResponseWriter, r *http.Request) {
	if h.defaults == nil {
		core.Error(w, r, types.NewAppError(types.ErrCodeNotFoundCatalog, "no catalog loaded", nil))
		return
	}

	names := h.defaults.Cafes.Names()
	entries := make([]CafeEntry, len(names))
	for i, name := range names {
		entries[i] = CafeEntry{Name: name, CafeDetails: h.defaults.Cafes[name]}
	}
	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: map[string]any{"cafes": entries}})
}

// parseBoolParam reads an optional boolean query parameter.
func parseBoolParam(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, types.NewAppErrorWithDetails(
			types.ErrCodeValidationInvalidQueryParam,
			name+" must be a boolean",
			err,
			map[string]any{"parameter": name, "value": raw},
		)
	}
	return v, nil
}
