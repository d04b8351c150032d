package calendarsync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для сервиса синхронизации с календарем салона
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента календаря
func NewClient(baseURL, apiKey string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// CreateEvent создает событие в календаре салона и возвращает его ID.
// Вызывается делателем записи в best-effort режиме: ошибка логируется,
// но не откатывает бронирование
func (c *Client) CreateEvent(ctx context.Context, event *EventRequest) (string, error) {
	url := fmt.Sprintf("%s/api/v1/events", c.baseURL)

	payload, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// Продолжаем обработку
	default:
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var eventResp EventResponse
	if err := json.NewDecoder(resp.Body).Decode(&eventResp); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if eventResp.EventID == "" {
		return "", fmt.Errorf("%w: empty event_id in response", ErrInvalidResponse)
	}

	return eventResp.EventID, nil
}

// DeleteEvent удаляет событие из календаря (при отмене записи)
func (c *Client) DeleteEvent(ctx context.Context, eventID string) error {
	url := fmt.Sprintf("%s/api/v1/events/%s", c.baseURL, eventID)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return ErrEventNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}
}
