package domain

import (
	"github.com/golang-jwt/jwt"
	"github.com/x-xyz/auction/base/ctx"
)

// JwtCustomClaims is the payload of the token issued at login
type JwtCustomClaims struct {
	UserId int64 `json:"id"`
	Role   Role  `json:"role"`
	jwt.StandardClaims
}

func (c *JwtCustomClaims) IsAdmin() bool {
	return c.Role == RoleAdmin
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"-" validate:"eqfield=Password"`
}

type VerifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	Token string `json:"token" validate:"required"`
}

type AuthRepo interface {
	// Login returns the token
	Login(c ctx.Ctx, req LoginRequest) (string, error)
	Register(c ctx.Ctx, req RegisterRequest) error
	Verify(c ctx.Ctx, req VerifyRequest) error
}

// CredentialStore keeps the bearer token of one session
type CredentialStore interface {
	// Get returns false when there is no token
	Get() (string, bool)
	Set(token string) error
	Clear()
}

// AuthUsecase is the login session of the client
type AuthUsecase interface {
	Login(c ctx.Ctx, email, password string) error
	// Register remembers the email for the following Verify
	Register(c ctx.Ctx, req RegisterRequest) error
	Verify(c ctx.Ctx, code string) error
	Logout(c ctx.Ctx)
	// Claims of the stored token, zero claims when there is none
	Claims(c ctx.Ctx) JwtCustomClaims
}

// TokenUsecase issues and checks the tokens of the sandbox backend
type TokenUsecase interface {
	SignToken(c ctx.Ctx, userId int64, role Role) (string, error)
	ParseToken(c ctx.Ctx, token string) (*JwtCustomClaims, error)
}
