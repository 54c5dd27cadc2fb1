package transport

import (
	"errors"
	"net/http"

	"delicassy/internal/middleware"
	"delicassy/internal/repository"
	"delicassy/internal/service"
	"delicassy/internal/store"

	"go.uber.org/zap"
)

// IDResponse is returned by every create endpoint
type IDResponse struct {
	ID string `json:"id"`
}

// statusFor maps service and store errors to an HTTP status and the
// message shown to the client
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, store.ErrInvalidID):
		return http.StatusBadRequest, "invalid id"
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrEmptyCart):
		return http.StatusBadRequest, "cart is empty"
	case errors.Is(err, service.ErrProductUnavailable):
		return http.StatusBadRequest, err.Error()

	case errors.Is(err, repository.ErrProductNotFound):
		return http.StatusNotFound, "product not found"
	case errors.Is(err, repository.ErrCartNotFound):
		return http.StatusNotFound, "cart not found"
	case errors.Is(err, repository.ErrOrderNotFound):
		return http.StatusNotFound, "order not found"
	case errors.Is(err, repository.ErrUserNotFound):
		return http.StatusNotFound, "user not found"

	case errors.Is(err, service.ErrSlugTaken):
		return http.StatusConflict, err.Error()
	case errors.Is(err, repository.ErrUserAlreadyExists):
		return http.StatusConflict, "user with this email already exists"

	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid email or password"

	case errors.Is(err, store.ErrUnavailable):
		return http.StatusServiceUnavailable, "database not available"
	}
	return http.StatusInternalServerError, "internal server error"
}

// respondWithServiceError writes the error response for err. Only
// unexpected failures are logged at error level.
func respondWithServiceError(w http.ResponseWriter, logger *zap.Logger, op string, err error) {
	status, message := statusFor(err)

	if status >= http.StatusInternalServerError {
		logger.Error(op+" failed", zap.Error(err))
	} else {
		logger.Debug(op+" rejected", zap.Int("status", status), zap.Error(err))
	}

	middleware.RespondWithError(w, status, message)
}

// decode reads and validates the JSON body. It writes the 400 response
// itself and reports false on failure.
func decode(w http.ResponseWriter, r *http.Request, logger *zap.Logger, v interface{}) bool {
	if err := middleware.DecodeAndValidate(r, v); err != nil {
		logger.Debug("Request validation failed", zap.String("path", r.URL.Path), zap.Error(err))
		middleware.RespondWithDecodeError(w, err)
		return false
	}
	return true
}
