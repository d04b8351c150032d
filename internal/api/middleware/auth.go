package middleware

import (
	"net/http"

	"github.com/lunanails/NS-BookingService/internal/api/handlers"
)

const adminTokenHeader = "X-Admin-Token"

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// AdminAuth проверяет админский токен в заголовке X-Admin-Token.
// Пустой сконфигурированный токен закрывает админские ручки полностью
func AdminAuth(token string, log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(adminTokenHeader)
			if token == "" || provided != token {
				log.Warn("%s %s - admin auth failed", r.Method, r.URL.Path)
				handlers.RespondForbidden(w, "доступ запрещен")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
