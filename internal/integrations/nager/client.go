package nager

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL публичный endpoint Nager.Date API v3
	DefaultBaseURL = "https://date.nager.at"

	// DefaultCacheTTL праздники не авторитетны дольше 12 часов
	DefaultCacheTTL = 12 * time.Hour

	fallbackCountryCode = "MK"
)

// Client клиент для работы с Nager.Date (справочник публичных праздников)
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      Cache
	cacheTTL   time.Duration
	log        Logger
}

// NewClient создает новый экземпляр клиента Nager.Date
func NewClient(baseURL string, timeout time.Duration, cache Cache, cacheTTL time.Duration, log Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

// GetHolidays получает список публичных праздников за год для страны
// Пустой код страны заменяется на MK; результат кэшируется на cacheTTL
func (c *Client) GetHolidays(ctx context.Context, year int, countryCode string) ([]Holiday, error) {
	countryCode = NormalizeCountryCode(countryCode)
	cacheKey := fmt.Sprintf("holidays:list:%s:%d", countryCode, year)

	// 1. Проверяем кэш
	if cached, ok, err := c.cache.GetHolidays(ctx, cacheKey); err != nil {
		c.log.Warn("nager: cache read failed for %s: %v", cacheKey, err)
	} else if ok {
		return cached, nil
	}

	// 2. Идём в API
	url := fmt.Sprintf("%s/api/v3/PublicHolidays/%d/%s", c.baseURL, year, countryCode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	holidays := make([]Holiday, 0)
	if err := json.NewDecoder(resp.Body).Decode(&holidays); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	// 3. Сохраняем в кэш (ошибка кэша не фатальна)
	if err := c.cache.SetHolidays(ctx, cacheKey, holidays, c.cacheTTL); err != nil {
		c.log.Warn("nager: cache write failed for %s: %v", cacheKey, err)
	}

	return holidays, nil
}

// GetHolidayDates получает множество дат праздников за год,
// ключ — дата в формате YYYY-MM-DD
func (c *Client) GetHolidayDates(ctx context.Context, year int, countryCode string) (map[string]Holiday, error) {
	holidays, err := c.GetHolidays(ctx, year, countryCode)
	if err != nil {
		return nil, err
	}

	dates := make(map[string]Holiday, len(holidays))
	for _, h := range holidays {
		if _, exists := dates[h.Date]; !exists {
			dates[h.Date] = h
		}
	}

	return dates, nil
}

// NormalizeCountryCode приводит код страны к верхнему регистру,
// пустой код заменяет на MK
func NormalizeCountryCode(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return fallbackCountryCode
	}
	return strings.ToUpper(code)
}
