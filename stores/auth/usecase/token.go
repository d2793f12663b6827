package usecase

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/x-xyz/auction/base/ctx"
	"github.com/x-xyz/auction/domain"
)

type tokenImpl struct {
	jwtSecret []byte
	ttl       time.Duration
}

func NewToken(jwtSecret string, ttl time.Duration) domain.TokenUsecase {
	return &tokenImpl{
		jwtSecret: []byte(jwtSecret),
		ttl:       ttl,
	}
}

func (im *tokenImpl) SignToken(c ctx.Ctx, userId int64, role domain.Role) (string, error) {
	claims := domain.JwtCustomClaims{
		UserId: userId,
		Role:   role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(im.ttl).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	if ss, err := token.SignedString(im.jwtSecret); err != nil {
		c.WithField("err", err).Error("token.SignedString failed")
		return "", err
	} else {
		return ss, nil
	}
}

func (im *tokenImpl) ParseToken(c ctx.Ctx, str string) (*domain.JwtCustomClaims, error) {
	token, err := jwt.ParseWithClaims(str, &domain.JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("Unexpected signing method: %v", token.Header["alg"])
		}
		return im.jwtSecret, nil
	})

	if token != nil {
		if claims, ok := token.Claims.(*domain.JwtCustomClaims); ok && token.Valid {
			return claims, nil
		}
	}
	if err == nil {
		err = domain.ErrUnauthenticated
	}
	return nil, err
}
