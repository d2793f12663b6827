package repository

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x-xyz/auction/base/ctx"
	"github.com/x-xyz/auction/domain"
	"github.com/x-xyz/auction/service/api"
)

func newRepo(t *testing.T, reply string, bodies *[]string) domain.AuthRepo {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := ioutil.ReadAll(r.Body)
		*bodies = append(*bodies, r.URL.Path+" "+string(b))
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return NewAuthRepo(api.NewClient(&api.ClientCfg{BaseURL: srv.URL}))
}

func TestLogin(t *testing.T) {
	bodies := []string{}
	repo := newRepo(t, `{"success":true,"data":"jwt-token"}`, &bodies)

	token, err := repo.Login(ctx.Background(), domain.LoginRequest{Email: "a@b.io", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", token)
	assert.Equal(t, []string{`/api/Authen/Login {"email":"a@b.io","password":"pw"}`}, bodies)
}

func TestLoginWithoutToken(t *testing.T) {
	for _, reply := range []string{`{"success":true,"data":null}`, `{"success":true,"data":""}`} {
		repo := newRepo(t, reply, &[]string{})
		_, err := repo.Login(ctx.Background(), domain.LoginRequest{Email: "a@b.io", Password: "pw"})
		assert.Equal(t, domain.ErrUnauthenticated, err, reply)
	}
}

func TestRegisterKeepsConfirmationLocal(t *testing.T) {
	bodies := []string{}
	repo := newRepo(t, `{"success":true}`, &bodies)

	require.NoError(t, repo.Register(ctx.Background(), domain.RegisterRequest{Email: "a@b.io", Password: "pw", ConfirmPassword: "pw"}))
	require.NoError(t, repo.Verify(ctx.Background(), domain.VerifyRequest{Email: "a@b.io", Token: "123456"}))
	assert.Equal(t, []string{
		`/api/Authen/Register {"email":"a@b.io","password":"pw"}`,
		`/api/Authen/Verify {"email":"a@b.io","token":"123456"}`,
	}, bodies)
}
