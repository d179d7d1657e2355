package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/proposal-backend/internal/logger"
	"github.com/ignatzorin/proposal-backend/internal/pkg/apperror"
)

// DegradedHeader выставляется, когда список получен в деградированном режиме.
const DegradedHeader = "X-Store-Degraded"

// ErrorHandler превращает ошибки из c.Error в JSON ответ {error}.
// Сообщения AppError отдаются клиенту, причина только логируется.
// Прочие ошибки маскируются как внутренние.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status, message := Describe(err)

		entry := logger.Log.WithFields(logrus.Fields{
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
			"status": status,
			"code":   apperror.CodeOf(err),
		}).WithError(err)
		if status >= http.StatusInternalServerError {
			entry.Error("request failed")
		} else {
			entry.Warn("request rejected")
		}

		c.JSON(status, gin.H{"error": message})
	}
}

// Describe возвращает HTTP статус и безопасное сообщение для ошибки.
func Describe(err error) (int, string) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus, appErr.Message
	}
	return http.StatusInternalServerError, "internal server error"
}
