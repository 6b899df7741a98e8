package adaptor

import (
	"errors"
	"net/http"

	"movie-booking/internal/usecase"
	"movie-booking/pkg/utils"

	"go.uber.org/zap"
)

// writeServiceError maps a service error to an HTTP response. The body always
// carries the machine-readable code so clients never parse error strings.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	code := usecase.ErrorCode(err)
	detail := utils.ErrorDetail{Code: code}

	var seatNotFound *usecase.SeatNotFoundError
	var alreadyBooked *usecase.SeatAlreadyBookedError
	switch {
	case errors.As(err, &seatNotFound):
		detail.SeatID = seatNotFound.SeatID.String()
	case errors.As(err, &alreadyBooked):
		detail.SeatID = alreadyBooked.SeatID.String()
	}

	errs := []utils.ErrorDetail{detail}

	switch code {
	case usecase.CodeInvalidRequest, usecase.CodePriceMismatch:
		log.Warn(operation+" rejected", zap.String("code", code), zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), errs)

	case usecase.CodeShowNotFound, usecase.CodeSeatNotFound, usecase.CodeNotFound:
		log.Warn(operation+" failed - not found", zap.String("code", code), zap.Error(err))
		utils.ResponseNotFound(w, err.Error(), errs)

	case usecase.CodeAlreadyBooked, usecase.CodeContention:
		log.Warn(operation+" failed - conflict", zap.String("code", code), zap.Error(err))
		utils.ResponseConflict(w, err.Error(), errs)

	default:
		// CodeInsufficient and CodeStorageError are internal faults.
		log.Error(operation+" failed", zap.String("code", code), zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
