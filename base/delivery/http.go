package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/x-xyz/auction/domain"
)

// JsonResponse is the envelope of every backend answer
type JsonResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Message string      `json:"message,omitempty"`
}

// MakeJsonResp writes data in the envelope. An error as data becomes the
// message of a failed response, with the status adjusted for the domain
// sentinels.
func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		return c.JSON(StatusOf(err, status), JsonResponse{Success: false, Message: err.Error()})
	}

	if status >= 400 {
		msg, _ := data.(string)
		return c.JSON(status, JsonResponse{Success: false, Message: msg})
	}

	return c.JSON(status, JsonResponse{Success: true, Data: data})
}

// MakeMessageResp writes a successful envelope with a message
func MakeMessageResp(c echo.Context, status int, data interface{}, msg string) error {
	return c.JSON(status, JsonResponse{Success: true, Data: data, Message: msg})
}

// MakeFieldErrors answers 400 with field errors, the shape validation
// failures take on the backend
func MakeFieldErrors(c echo.Context, errs map[string][]string) error {
	return c.JSON(http.StatusBadRequest, struct {
		Errors map[string][]string `json:"errors"`
	}{errs})
}

// StatusOf maps domain errors onto http statuses, def is used otherwise
func StatusOf(err error, def int) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidRating),
		errors.Is(err, domain.ErrBiddingClosed),
		errors.Is(err, domain.ErrInsufficientCredit):
		return http.StatusBadRequest
	}
	return def
}

// MakeFailResp answers 200 with success false, how the backend reports
// business rule failures
func MakeFailResp(c echo.Context, err error) error {
	return c.JSON(http.StatusOK, JsonResponse{Success: false, Message: err.Error()})
}
