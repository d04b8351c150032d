package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент почтового сервиса для писем-подтверждений
type Client struct {
	baseURL    string
	apiKey     string
	adminEmail string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр почтового клиента
func NewClient(baseURL, apiKey, adminEmail string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		adminEmail: adminEmail,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendConfirmation отправляет письмо-подтверждение записи.
// Вызывается в best-effort режиме: ошибка логируется, но не откатывает
// бронирование
func (c *Client) SendConfirmation(ctx context.Context, confirmation *ConfirmationRequest) error {
	return c.send(ctx, "/api/v1/emails/booking-confirmation", confirmation)
}

// SendAdminNotification отправляет администратору уведомление о новой записи.
// Адрес берется из конфигурации; если он не задан, уведомление пропускается
func (c *Client) SendAdminNotification(ctx context.Context, notification *AdminNotificationRequest) error {
	if c.adminEmail == "" {
		return nil
	}

	body := struct {
		To string `json:"to"`
		*AdminNotificationRequest
	}{
		To:                       c.adminEmail,
		AdminNotificationRequest: notification,
	}

	return c.send(ctx, "/api/v1/emails/admin-notification", body)
}

// send выполняет POST запрос к почтовому сервису
func (c *Client) send(ctx context.Context, path string, body interface{}) error {
	url := fmt.Sprintf("%s%s", c.baseURL, path)

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted:
		return nil
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}
}
