package adaptor

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"movie-booking/internal/usecase"
	"movie-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWriteServiceError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid request", usecase.ErrInvalidRequest, http.StatusBadRequest, usecase.CodeInvalidRequest},
		{"price mismatch", usecase.ErrPriceMismatch, http.StatusBadRequest, usecase.CodePriceMismatch},
		{"show not found", usecase.ErrShowNotFound, http.StatusNotFound, usecase.CodeShowNotFound},
		{"seat not found", &usecase.SeatNotFoundError{SeatID: uuid.New()}, http.StatusNotFound, usecase.CodeSeatNotFound},
		{"not found", usecase.ErrNotFound, http.StatusNotFound, usecase.CodeNotFound},
		{"already booked", &usecase.SeatAlreadyBookedError{SeatID: uuid.New(), Label: "A1"}, http.StatusConflict, usecase.CodeAlreadyBooked},
		{"contention", usecase.ErrContention, http.StatusConflict, usecase.CodeContention},
		{"insufficient", usecase.ErrInsufficient, http.StatusInternalServerError, usecase.CodeInsufficient},
		{"storage", &usecase.StorageError{Op: "persist booking", Err: errors.New("boom")}, http.StatusInternalServerError, usecase.CodeStorageError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeServiceError(rec, zap.NewNop(), tt.err, "test")

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body utils.Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Status)

			if tt.wantStatus == http.StatusInternalServerError {
				// Internal faults never leak details or codes to clients.
				assert.Equal(t, "Internal server error", body.Message)
				return
			}

			errs, ok := body.Errors.([]any)
			require.True(t, ok, "errors should be a list")
			require.Len(t, errs, 1)
			detail, ok := errs[0].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, detail["code"])
		})
	}
}

func TestWriteServiceError_SeatDetails(t *testing.T) {
	seatID := uuid.New()
	err := fmt.Errorf("booking failed: %w", &usecase.SeatAlreadyBookedError{SeatID: seatID, Label: "B7"})

	rec := httptest.NewRecorder()
	writeServiceError(rec, zap.NewNop(), err, "create booking")

	assert.Equal(t, http.StatusConflict, rec.Code)

	var body utils.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	errs := body.Errors.([]any)
	detail := errs[0].(map[string]any)
	assert.Equal(t, usecase.CodeAlreadyBooked, detail["code"])
	assert.Equal(t, seatID.String(), detail["seat_id"])
}
