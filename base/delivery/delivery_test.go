package delivery

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/x-xyz/auction/domain"
	"golang.org/x/xerrors"
)

func record(f func(c echo.Context) error) *httptest.ResponseRecorder {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = f(c)
	return rec
}

func TestMakeJsonResp(t *testing.T) {
	rec := record(func(c echo.Context) error { return MakeJsonResp(c, http.StatusOK, []int{1}) })
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":[1]}`, rec.Body.String())

	rec = record(func(c echo.Context) error { return MakeJsonResp(c, http.StatusNotFound, domain.MsgNotFound) })
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"success":false,"data":null,"message":"Not found."}`, rec.Body.String())

	rec = record(func(c echo.Context) error {
		return MakeJsonResp(c, http.StatusInternalServerError, xerrors.Errorf("load: %w", domain.ErrForbidden))
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestMakeFailResp(t *testing.T) {
	rec := record(func(c echo.Context) error { return MakeFailResp(c, errors.New("Too low")) })
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":false,"data":null,"message":"Too low"}`, rec.Body.String())
}

func TestMakeFieldErrors(t *testing.T) {
	rec := record(func(c echo.Context) error {
		return MakeFieldErrors(c, map[string][]string{"email": {"required"}})
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"errors":{"email":["required"]}}`, rec.Body.String())
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, StatusOf(domain.ErrUnauthenticated, 500))
	assert.Equal(t, http.StatusBadRequest, StatusOf(domain.ErrInsufficientCredit, 500))
	assert.Equal(t, http.StatusTeapot, StatusOf(errors.New("x"), http.StatusTeapot))
}
