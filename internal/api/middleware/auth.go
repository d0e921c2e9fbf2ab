package middleware

import (
	"context"
	"net/http"
	"regexp"

	"github.com/dkoval/SBP-BookingService/internal/api/handlers"
)

type contextKey string

const tenantSlugKey contextKey = "tenantSlug"

// TenantHeader заголовок, идентифицирующий тенанта запроса
const TenantHeader = "X-Tenant-Slug"

// Слаг: строчные латинские буквы, цифры и дефисы, 1-64 символа
var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,63}$`)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TenantAuth извлекает слаг тенанта из заголовка X-Tenant-Slug и кладёт его
// в контекст запроса. Запросы без валидного слага отклоняются с 401.
func TenantAuth(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			slug := r.Header.Get(TenantHeader)
			if slug == "" {
				logger.Warn("%s %s - Missing %s header", r.Method, r.URL.Path, TenantHeader)
				handlers.RespondUnauthorized(w, "отсутствует заголовок "+TenantHeader)
				return
			}
			if !slugPattern.MatchString(slug) {
				logger.Warn("%s %s - Invalid tenant slug %q", r.Method, r.URL.Path, slug)
				handlers.RespondUnauthorized(w, "некорректный слаг тенанта")
				return
			}

			ctx := context.WithValue(r.Context(), tenantSlugKey, slug)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetTenantSlug возвращает слаг тенанта из контекста запроса
func GetTenantSlug(ctx context.Context) (string, bool) {
	slug, ok := ctx.Value(tenantSlugKey).(string)
	return slug, ok
}
