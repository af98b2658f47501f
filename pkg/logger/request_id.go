package logger

import (
	"context"

	"github.com/google/uuid"
)

// NewRequestID generates a random request id.
func NewRequestID() string {
	return uuid.New().String()
}

// ContextWithRequestID stores id in ctx so that WithContext and the GORM
// logger tag every line produced while serving the request.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}
