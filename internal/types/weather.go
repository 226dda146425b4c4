package types

// WeatherReading is a single weather observation supplied by an external
// weather provider. Units must match the thresholds applied by the weather
// opinion: degrees Celsius, percent, millimetres and metres per second.
type WeatherReading struct {
	TemperatureC        float64 `json:"temperature_c" yaml:"temperature_c" validate:"finite"`
	PrecipitationChance float64 `json:"precipitation_chance" yaml:"precipitation_chance" validate:"finite,gte=0,lte=100"`
	PrecipitationMM     float64 `json:"precipitation_mm" yaml:"precipitation_mm" validate:"finite,gte=0"`
	WindSpeed           float64 `json:"wind_speed" yaml:"wind_speed" validate:"finite,gte=0"`
}

// Validate checks the reading against its physical ranges.
func (w WeatherReading) Validate() error {
	return ValidateStruct(w, ErrCodeValidationInvalidWeather, "invalid weather reading")
}

// WeatherInput is the wire form of a WeatherReading. Every field must be
// present; a missing field is rejected instead of defaulting to zero.
type WeatherInput struct {
	TemperatureC        *float64 `json:"temperature_c" yaml:"temperature_c" validate:"required,finite"`
	PrecipitationChance *float64 `json:"precipitation_chance" yaml:"precipitation_chance" validate:"required,finite,gte=0,lte=100"`
	PrecipitationMM     *float64 `json:"precipitation_mm" yaml:"precipitation_mm" validate:"required,finite,gte=0"`
	WindSpeed           *float64 `json:"wind_speed" yaml:"wind_speed" validate:"required,finite,gte=0"`
}

// Validate checks that every field is present and within range.
func (in WeatherInput) Validate() error {
	return ValidateStruct(in, ErrCodeValidationInvalidWeather, "invalid weather reading")
}

// Reading converts a validated input into a WeatherReading. Absent fields
// read as zero, so callers must Validate first.
func (in WeatherInput) Reading() WeatherReading {
	return WeatherReading{
		TemperatureC:        deref(in.TemperatureC),
		PrecipitationChance: deref(in.PrecipitationChance),
		PrecipitationMM:     deref(in.PrecipitationMM),
		WindSpeed:           deref(in.WindSpeed),
	}
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
