// Package weather provides a reusable SDK for the OpenWeatherMap API.
//
// Architecture:
//
// This is an **API SDK**, not just a "dumb" HTTP client. It provides:
//   - HTTP client with rate limiting and error classification
//   - Two-step lookup: free-text location → coordinates → current conditions
//   - Uniform outcome serialization for LLM consumption (see types.go)
//
// Usage pattern:
//   - pkg/weather - reusable SDK (can be used in any project)
//   - pkg/tools/std - thin wrapper for LLM function calling
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ilkoid/pogoda-ai/pkg/config"
	"github.com/ilkoid/pogoda-ai/pkg/utils"
	"golang.org/x/time/rate"
)

// HTTPClient интерфейс для выполнения HTTP запросов.
//
// Позволяет мокировать HTTP клиент в тестах.
// Стандартный *http.Client реализует этот интерфейс.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// GeoCache — опциональный кэш геокодинга.
//
// Координаты локации статичны, поэтому повторные запросы можно не гонять
// по сети. nil кэш означает "кэширование выключено".
type GeoCache interface {
	// Get возвращает координаты из кэша, ok=false при промахе.
	Get(location string) (lat, lon float64, ok bool)
	// Put сохраняет координаты. Ошибка кэша не фатальна для lookup.
	Put(location string, lat, lon float64) error
}

// Client — клиент OpenWeatherMap (geocoding + current weather).
type Client struct {
	apiKey         string
	geoBaseURL     string
	weatherBaseURL string
	units          string

	httpClient HTTPClient    // Интерфейс вместо конкретного типа для testability
	limiter    *rate.Limiter // Ограничитель исходящих запросов (free tier)
	cache      GeoCache      // nil = без кэша
}

// New создаёт клиент из конфигурации, подставляя дефолты.
func New(cfg config.WeatherConfig) *Client {
	cfg = cfg.GetDefaults()

	// rate_limit задан в запросах в минуту
	perSecond := rate.Limit(float64(cfg.RateLimit) / 60.0)

	return &Client{
		apiKey:         cfg.APIKey,
		geoBaseURL:     strings.TrimRight(cfg.GeoBaseURL, "/"),
		weatherBaseURL: strings.TrimRight(cfg.WeatherBaseURL, "/"),
		units:          cfg.Units,
		httpClient:     &http.Client{Timeout: cfg.ParseTimeout()},
		limiter:        rate.NewLimiter(perSecond, cfg.BurstLimit),
	}
}

// SetHTTPClient подменяет HTTP клиент (для тестов).
func (c *Client) SetHTTPClient(h HTTPClient) {
	c.httpClient = h
}

// SetGeoCache подключает кэш геокодинга.
func (c *Client) SetGeoCache(cache GeoCache) {
	c.cache = cache
}

// geoEntry — один результат Geocoding API.
type geoEntry struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// currentResponse — ответ Current Weather API.
//
// Указатели нужны чтобы отличить отсутствующее поле от нулевого значения.
// Поле cod приходит числом при успехе и строкой в некоторых ошибках.
type currentResponse struct {
	Cod     any    `json:"cod"`
	Message string `json:"message"`
	Main    *struct {
		Temp      *float64 `json:"temp"`
		FeelsLike *float64 `json:"feels_like"`
		Humidity  *int     `json:"humidity"`
	} `json:"main"`
	Wind *struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
}

// Geocode резолвит свободную строку локации в координаты.
//
// Запрос ограничен одним лучшим совпадением (limit=1). Пустой результат
// провайдера — это KindNotFound, нормальный ожидаемый исход.
func (c *Client) Geocode(ctx context.Context, location string) (lat, lon float64, lerr *LookupError) {
	if c.cache != nil {
		if lat, lon, ok := c.cache.Get(location); ok {
			utils.Debug("Geocode cache hit", "location", location)
			return lat, lon, nil
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return 0, 0, &LookupError{Kind: KindUnexpected, Message: fmt.Sprintf("rate limiter: %v", err), Location: location}
	}

	query := url.Values{}
	query.Set("q", location)
	query.Set("limit", "1")
	query.Set("appid", c.apiKey)
	endpoint := c.geoBaseURL + "/direct?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, 0, &LookupError{Kind: KindUnexpected, Message: err.Error(), Location: location}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, 0, &LookupError{Kind: KindNetwork, Message: err.Error(), Location: location}
	}
	defer resp.Body.Close()

	var entries []geoEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return 0, 0, &LookupError{Kind: KindData, Message: fmt.Sprintf("invalid geocoding response: %v", err), Location: location}
	}

	if len(entries) == 0 {
		return 0, 0, &LookupError{
			Kind:     KindNotFound,
			Message:  fmt.Sprintf("Location '%s' not found", location),
			Location: location,
		}
	}

	lat, lon = entries[0].Lat, entries[0].Lon

	if c.cache != nil {
		if err := c.cache.Put(location, lat, lon); err != nil {
			// Кэш не критичен — логируем и продолжаем
			utils.Warn("Geocode cache put failed", "location", location, "error", err)
		}
	}

	return lat, lon, nil
}

// Current запрашивает текущие условия по координатам.
func (c *Client) Current(ctx context.Context, lat, lon float64) (*Current, *LookupError) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &LookupError{Kind: KindUnexpected, Message: fmt.Sprintf("rate limiter: %v", err)}
	}

	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	query.Set("units", c.units)
	query.Set("appid", c.apiKey)
	endpoint := c.weatherBaseURL + "/weather?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &LookupError{Kind: KindUnexpected, Message: err.Error()}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &LookupError{Kind: KindNetwork, Message: err.Error()}
	}
	defer resp.Body.Close()

	var payload currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &LookupError{Kind: KindData, Message: fmt.Sprintf("invalid weather response: %v", err)}
	}

	// Провайдер кодирует свой статус внутри payload, не в HTTP коде
	if code := codeAsInt(payload.Cod); code != http.StatusOK {
		message := payload.Message
		if message == "" {
			message = "Unknown error"
		}
		return nil, &LookupError{Kind: KindProvider, Status: code, Message: message}
	}

	// Вытаскиваем обязательные поля, отличая "нет поля" от нулевого значения
	if payload.Main == nil || payload.Main.Temp == nil {
		return nil, &LookupError{Kind: KindData, Message: "Missing field: main.temp"}
	}
	if payload.Main.FeelsLike == nil {
		return nil, &LookupError{Kind: KindData, Message: "Missing field: main.feels_like"}
	}
	if payload.Main.Humidity == nil {
		return nil, &LookupError{Kind: KindData, Message: "Missing field: main.humidity"}
	}
	if payload.Wind == nil || payload.Wind.Speed == nil {
		return nil, &LookupError{Kind: KindData, Message: "Missing field: wind.speed"}
	}
	if len(payload.Weather) == 0 {
		return nil, &LookupError{Kind: KindData, Message: "Missing field: weather[0].description"}
	}

	return &Current{
		Temperature: *payload.Main.Temp,
		FeelsLike:   *payload.Main.FeelsLike,
		Humidity:    *payload.Main.Humidity,
		WindSpeed:   *payload.Wind.Speed,
		Description: payload.Weather[0].Description,
	}, nil
}

// Lookup — полный цикл: геокодинг, затем текущая погода.
//
// Результат всегда эхо-ит исходную строку пользователя в поле Location,
// а не каноническую форму геокодера. Возвращается ровно один из
// Result/LookupError. Все провалы терминальны — без retry.
func (c *Client) Lookup(ctx context.Context, location string) (*Result, *LookupError) {
	if strings.TrimSpace(location) == "" {
		lerr := &LookupError{Kind: KindNotFound, Message: "Location '' not found", Location: location}
		c.logFailure(lerr)
		return nil, lerr
	}

	lat, lon, lerr := c.Geocode(ctx, location)
	if lerr != nil {
		c.logFailure(lerr)
		return nil, lerr
	}

	current, lerr := c.Current(ctx, lat, lon)
	if lerr != nil {
		lerr.Location = location
		c.logFailure(lerr)
		return nil, lerr
	}

	return &Result{Location: location, Current: *current}, nil
}

// logFailure пишет одну диагностическую строку на провал.
func (c *Client) logFailure(lerr *LookupError) {
	utils.Error("Weather lookup failed",
		"kind", lerr.Kind.String(),
		"location", lerr.Location,
		"message", lerr.Message)
}

// codeAsInt нормализует поле cod (число при успехе, строка в ошибках).
func codeAsInt(v any) int {
	switch code := v.(type) {
	case float64:
		return int(code)
	case string:
		n, err := strconv.Atoi(code)
		if err != nil {
			return 0
		}
		return n
	case int:
		return code
	default:
		return 0
	}
}
