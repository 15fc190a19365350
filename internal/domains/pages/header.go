package pages

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"novinky-backend/pkg/logger"
)

// Header carries the date, name-day and weather lines shown at the top
// of every page. Values are refreshed by scheduled jobs and read by
// every render, so access goes through a read-write lock.
type Header struct {
	mu       sync.RWMutex
	date     string
	nameDay  string
	weather  string
	location *time.Location

	weatherURL string
	client     *http.Client
}

// HeaderValues is the snapshot handed to templates.
type HeaderValues struct {
	Date    string
	NameDay string
	Weather string
}

// NewHeader creates a header with the date and name-day already set.
// Weather starts empty until the first fetch completes.
func NewHeader(weatherURL string) *Header {
	loc, err := time.LoadLocation("Europe/Prague")
	if err != nil {
		loc = time.UTC
	}

	h := &Header{
		location:   loc,
		weatherURL: weatherURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
	h.UpdateDate()
	return h
}

// Values returns a consistent snapshot of the header lines.
func (h *Header) Values() HeaderValues {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return HeaderValues{Date: h.date, NameDay: h.nameDay, Weather: h.weather}
}

// UpdateDate recomputes the date and name-day lines from the Prague clock.
func (h *Header) UpdateDate() {
	now := time.Now().In(h.location)
	date := FormatCzechDate(now)
	nameDay := FormatNameDay(now)

	h.mu.Lock()
	h.date = date
	h.nameDay = nameDay
	h.mu.Unlock()
}

// UpdateWeather fetches the current Prague temperature. Failures leave
// the previous value in place.
func (h *Header) UpdateWeather(ctx context.Context) error {
	if h.weatherURL == "" {
		return nil
	}

	temp, err := h.fetchTemperature(ctx)
	if err != nil {
		logger.Error("could not fetch weather", err)
		return err
	}

	h.mu.Lock()
	h.weather = fmt.Sprintf("%.0f°C | Praha", temp)
	h.mu.Unlock()
	return nil
}

func (h *Header) fetchTemperature(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.weatherURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build weather request: %w", err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch weather: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("weather service returned status %d", resp.StatusCode)
	}

	var payload struct {
		CurrentWeather struct {
			Temperature float64 `json:"temperature"`
		} `json:"current_weather"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("failed to decode weather response: %w", err)
	}

	return payload.CurrentWeather.Temperature, nil
}
