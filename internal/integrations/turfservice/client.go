package turfservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с TurfService (каталог площадок)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента TurfService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetTurf получает площадку по ID
// Каталог - источник базовой цены, владельца и списка менеджеров
func (c *Client) GetTurf(ctx context.Context, turfID int64) (*Turf, error) {
	url := fmt.Sprintf("%s/internal/turfs/%d", c.baseURL, turfID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid turf ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrTurfNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var turf Turf
	if err := json.NewDecoder(resp.Body).Decode(&turf); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &turf, nil
}

// GetTurfWithGracefulDegradation получает площадку с graceful degradation
// При недоступности каталога возвращает ErrServiceDegraded - читающие операции
// могут продолжить работу без данных каталога
func (c *Client) GetTurfWithGracefulDegradation(ctx context.Context, turfID int64) (*Turf, error) {
	turf, err := c.GetTurf(ctx, turfID)
	if err != nil {
		// Бизнес-ошибку (площадка не найдена) пробрасываем дальше
		if errors.Is(err, ErrTurfNotFound) {
			c.log.Info("Turf id=%d not found in catalog", turfID)
			return nil, err
		}

		// Для остальных ошибок (недоступность, timeout, ошибки парсинга)
		// применяем graceful degradation
		c.log.Error("TurfService unavailable, applying graceful degradation for turf_id=%d: %v", turfID, err)
		return nil, fmt.Errorf("%w: turf_id=%d, error=%v", ErrServiceDegraded, turfID, err)
	}

	return turf, nil
}
