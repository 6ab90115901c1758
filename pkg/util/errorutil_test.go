package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{name: "nil", err: nil},
		{name: "passthrough", err: NewForbidden("nope"), wantCode: "FORBIDDEN", wantStatus: http.StatusForbidden},
		{name: "wrapped domain error", err: fmt.Errorf("outer: %w", NewValidationError("bad", nil)), wantCode: "VALIDATION_FAILED", wantStatus: http.StatusBadRequest},
		{name: "no rows becomes not found", err: pgx.ErrNoRows, wantCode: "NOT_FOUND", wantStatus: http.StatusNotFound},
		{name: "generic error", err: errors.New("boom"), wantCode: "INTERNAL_ERROR", wantStatus: http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ToDomainError(tc.err)
			if tc.err == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tc.wantCode, got.Code)
			assert.Equal(t, tc.wantStatus, got.HTTPStatus)
		})
	}
}

func TestDataInconsistencyHidesDetail(t *testing.T) {
	err := NewDataInconsistency("ticket 3 references missing category 9")

	var domainErr *DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "DATA_INCONSISTENCY", domainErr.Code)
	assert.Equal(t, http.StatusInternalServerError, domainErr.HTTPStatus)
	assert.Equal(t, "internal server error", domainErr.Message)
	assert.Contains(t, domainErr.Error(), "missing category 9")
}

func TestConflictCarriesCode(t *testing.T) {
	err := NewConflict("ALREADY_CLOSED", "ticket is already closed")

	var domainErr *DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "ALREADY_CLOSED", domainErr.Code)
	assert.Equal(t, http.StatusConflict, domainErr.HTTPStatus)
}
