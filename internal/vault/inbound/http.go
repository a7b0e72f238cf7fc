package inbound

import (
	"context"

	"github.com/otpvault/otpvault/internal/pkg/router"
	"github.com/otpvault/otpvault/internal/vault/usecase"
)

type uc interface {
	Add(ctx context.Context, in usecase.AddInput) (*usecase.AddOutput, error)
	Delete(ctx context.Context, in usecase.DeleteInput) error
	List(ctx context.Context) (*usecase.ListOutput, error)
	Export(ctx context.Context) (*usecase.ExportOutput, error)
	Import(ctx context.Context, in usecase.ImportInput) (*usecase.ImportOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// all vault endpoints need an authenticated session
	r.POST("/api/v1/vault/tokens", end.Add)
	r.GET("/api/v1/vault/tokens", end.List)
	r.DELETE("/api/v1/vault/tokens/:id", end.Delete)
	r.GET("/api/v1/vault/export", end.Export)
	r.POST("/api/v1/vault/import", end.Import)
}
