package inbound

import (
	"context"

	"github.com/otpvault/otpvault/internal/auth/usecase"
	"github.com/otpvault/otpvault/internal/pkg/router"
)

type uc interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*usecase.RegisterOutput, error)
	RegisterVerify(ctx context.Context, in usecase.RegisterVerifyInput) (*usecase.RegisterVerifyOutput, error)
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	Logout(ctx context.Context) error
	Session(ctx context.Context) (*usecase.SessionOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/v1/auth/register", end.Register)
	r.POST("/api/v1/auth/register/verify", end.RegisterVerify)
	r.POST("/api/v1/auth/login", end.Login)
	r.POST("/api/v1/auth/logout", end.Logout)   // need authenticated
	r.GET("/api/v1/auth/session", end.Session) // need authenticated
}
