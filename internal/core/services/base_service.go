package services

import (
	"context"
	"log/slog"

	"github.com/openbooks-app/openbooks_backend/internal/middleware"
)

// BaseService provides logging helpers shared by the concrete services.
type BaseService struct{}

// LogInfo logs an informational message with the request-scoped logger.
func (s *BaseService) LogInfo(ctx context.Context, msg string, args ...any) {
	middleware.GetLoggerFromCtx(ctx).Info(msg, args...)
}

// LogWarn logs a warning with the request-scoped logger.
func (s *BaseService) LogWarn(ctx context.Context, msg string, args ...any) {
	middleware.GetLoggerFromCtx(ctx).Warn(msg, args...)
}

// LogError logs an error with the request-scoped logger.
func (s *BaseService) LogError(ctx context.Context, err error, msg string, args ...any) {
	args = append(args, slog.String("error", err.Error()))
	middleware.GetLoggerFromCtx(ctx).Error(msg, args...)
}
