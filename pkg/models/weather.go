package models

import (
	"time"
)

// UVRecord stores one UV index observation for a location.
type UVRecord struct {
	ID         string    `json:"id"`
	UVIndex    float64   `json:"uv_index"`
	Clouds     *int      `json:"clouds,omitempty"`     // cloud coverage in percent
	Visibility *int      `json:"visibility,omitempty"` // visibility in meters
	LocationID string    `json:"location_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TemperatureRecord stores one temperature observation for a location.
type TemperatureRecord struct {
	ID          string    `json:"id"`
	Temperature float64   `json:"temperature"` // Celsius
	FeelsLike   *float64  `json:"feels_like,omitempty"`
	Humidity    *float64  `json:"humidity,omitempty"`
	Pressure    *float64  `json:"pressure,omitempty"` // hPa
	WindSpeed   *float64  `json:"wind_speed,omitempty"`
	LocationID  string    `json:"location_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
