package weather

import (
	"fmt"
	"time"

	"weatherview.app/pkg/validation"
)

const absoluteZeroCelsius = -273.15

// Query is a user supplied city lookup
type Query struct {
	City string
}

// IsValid validates the query. The city is otherwise passed to the provider verbatim.
func (q Query) IsValid() error {
	if !validation.IsNotEmpty(q.City) {
		return fmt.Errorf("city cannot be empty")
	}
	return nil
}

// Record is the parsed snapshot of current conditions for one query
type Record struct {
	TemperatureKelvin float64
	ConditionCode     int
	Description       string
	City              string
	Timestamp         time.Time
}

// IsValid validates record data received from a provider
func (r *Record) IsValid() error {
	if r.TemperatureKelvin < 0 {
		return fmt.Errorf("temperature cannot be below absolute zero")
	}
	return nil
}

// Celsius converts the temperature from Kelvin to Celsius
func (r *Record) Celsius() float64 {
	return r.TemperatureKelvin + absoluteZeroCelsius
}

// Fahrenheit converts the temperature from Kelvin to Fahrenheit
func (r *Record) Fahrenheit() float64 {
	return r.TemperatureKelvin*9/5 - 459.67
}

// String returns a string representation of the record
func (r *Record) String() string {
	return fmt.Sprintf("%s: %.1f°C, code %d, %s",
		r.City, r.Celsius(), r.ConditionCode, r.Description)
}
