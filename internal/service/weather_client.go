package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// openMeteoCurrentFields variables requested for the metastation block.
const openMeteoCurrentFields = "temperature_2m,relative_humidity_2m,apparent_temperature,precipitation,rain,weather_code,cloud_cover,pressure_msl,surface_pressure,wind_speed_10m,wind_direction_10m"

var weatherUnavailable = json.RawMessage(`{"error":"Weather unavailable"}`)

// WeatherResult is either the provider document or a failure; it never
// carries both.
type WeatherResult struct {
	Data json.RawMessage
	Err  error
}

// Available reports whether Data holds a provider document.
func (r WeatherResult) Available() bool {
	return r.Err == nil && len(r.Data) > 0
}

// Metastation returns the document to embed in the status snapshot, or the
// fixed placeholder when weather is unavailable.
func (r WeatherResult) Metastation() json.RawMessage {
	if !r.Available() {
		return weatherUnavailable
	}
	return r.Data
}

// WeatherProvider current conditions for the station site.
type WeatherProvider interface {
	CurrentWeather(ctx context.Context) WeatherResult
}

// OpenMeteoClient Open-Meteo forecast API client
type OpenMeteoClient struct {
	httpClient *resty.Client
	latitude   float64
	longitude  float64
	timeout    time.Duration
	logger     *zap.Logger
}

// NewOpenMeteoClient builds a client with a hard timeout and no retries:
// the status endpoint cannot wait on a slow weather provider.
func NewOpenMeteoClient(baseURL string, latitude, longitude float64, timeout time.Duration, logger *zap.Logger) *OpenMeteoClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")

	return &OpenMeteoClient{
		httpClient: client,
		latitude:   latitude,
		longitude:  longitude,
		timeout:    timeout,
		logger:     logger,
	}
}

// CurrentWeather fetches current conditions. Failures are reported in the
// result, never returned as an error.
func (c *OpenMeteoClient) CurrentWeather(ctx context.Context) WeatherResult {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"latitude":  strconv.FormatFloat(c.latitude, 'f', -1, 64),
			"longitude": strconv.FormatFloat(c.longitude, 'f', -1, 64),
			"current":   openMeteoCurrentFields,
			"timezone":  "auto",
		}).
		Get("/v1/forecast")
	if err != nil {
		return c.fail(fmt.Errorf("%w: %v", ErrWeatherUnavailable, err))
	}
	if resp.IsError() {
		return c.fail(fmt.Errorf("%w: http status %d", ErrWeatherUnavailable, resp.StatusCode()))
	}

	body := bytes.TrimSpace(resp.Body())
	if err := validateWeatherDocument(body); err != nil {
		return c.fail(err)
	}
	return WeatherResult{Data: json.RawMessage(body)}
}

func (c *OpenMeteoClient) fail(err error) WeatherResult {
	c.logger.Warn("Weather provider unavailable", zap.Error(err))
	return WeatherResult{Err: err}
}

// validateWeatherDocument accepts a JSON object without a provider "error" field.
func validateWeatherDocument(body []byte) error {
	if len(body) == 0 {
		return fmt.Errorf("%w: empty body", ErrWeatherUnavailable)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil {
		return fmt.Errorf("%w: invalid document: %v", ErrWeatherUnavailable, err)
	}
	if doc == nil {
		return fmt.Errorf("%w: null document", ErrWeatherUnavailable)
	}
	if reason, ok := doc["error"]; ok {
		detail := string(doc["reason"])
		if detail == "" {
			detail = string(reason)
		}
		return fmt.Errorf("%w: provider error %s", ErrWeatherUnavailable, detail)
	}
	return nil
}
