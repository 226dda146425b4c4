package lunch

import "lunchofficer/internal/types"

// Acceptable weather limits for walking to lunch. Limits are inclusive.
const (
	MaxAcceptableWind                = 8
	MaxAcceptableTemperature         = 25
	MinAcceptableTemperature         = -15
	MaxAcceptablePrecipitationChance = 50
	MaxAcceptablePrecipitationAmount = 2.0
)

// WeatherOpinion classifies a single weather reading as acceptable or not.
type WeatherOpinion struct {
	weather *types.WeatherReading
}

// NewWeatherOpinion returns an opinion with no reading set.
func NewWeatherOpinion() *WeatherOpinion {
	return &WeatherOpinion{}
}

// SetWeather replaces the stored reading.
func (o *WeatherOpinion) SetWeather(w types.WeatherReading) *WeatherOpinion {
	o.weather = &w
	return o
}

// IsPositive reports whether the stored reading is within every limit.
// known is false when no reading has been set, in which case positive is
// meaningless and the caller decides how to treat it.
func (o *WeatherOpinion) IsPositive() (positive, known bool) {
	if o.weather == nil {
		return false, false
	}
	w := o.weather
	return w.WindSpeed <= MaxAcceptableWind &&
		w.TemperatureC <= MaxAcceptableTemperature &&
		w.TemperatureC >= MinAcceptableTemperature &&
		w.PrecipitationChance <= MaxAcceptablePrecipitationChance &&
		w.PrecipitationMM <= MaxAcceptablePrecipitationAmount, true
}
