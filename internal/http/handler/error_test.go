package handler

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"reportapi/internal/queryengine"
	"reportapi/internal/service"
	"reportapi/internal/storage"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", &service.ValidationError{Field: "limit", Message: "must be between 1 and 100"}, fiber.StatusBadRequest, "VALIDATION_ERROR"},
		{"wrapped validation", fmt.Errorf("list: %w", &service.ValidationError{Message: "bad"}), fiber.StatusBadRequest, "VALIDATION_ERROR"},
		{"timeout", fmt.Errorf("wait: %w", queryengine.ErrQueryTimeout), fiber.StatusGatewayTimeout, "QUERY_TIMEOUT"},
		{"query failed", &queryengine.QueryFailedError{ExecutionID: "q", State: "FAILED"}, fiber.StatusInternalServerError, "QUERY_FAILED"},
		{"document not found", service.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{"snapshot not found", storage.ErrSnapshotNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{"other", errors.New("boom"), fiber.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code := classify(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}
