package calendarsync

// EventRequest модель запроса на создание события в календаре салона
type EventRequest struct {
	Title        string   `json:"title"`
	Date         string   `json:"date"`       // YYYY-MM-DD
	StartTime    string   `json:"start_time"` // HH:MM
	DurationMins int      `json:"duration_minutes"`
	CustomerName string   `json:"customer_name"`
	Services     []string `json:"services"`
	Notes        *string  `json:"notes,omitempty"`
}

// EventResponse модель ответа с идентификатором созданного события
type EventResponse struct {
	EventID string `json:"event_id"`
}

// ErrorResponse модель ошибки от сервиса календаря
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
