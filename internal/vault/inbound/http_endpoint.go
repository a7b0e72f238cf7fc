package inbound

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/otpvault/otpvault/internal/pkg/goerror"
	"github.com/otpvault/otpvault/internal/pkg/router"
	"github.com/otpvault/otpvault/internal/vault/entity"
	"github.com/otpvault/otpvault/internal/vault/usecase"
	"github.com/samber/lo"
)

// HTTPEndpoint exposes HTTP handlers for the stored token vault.
type HTTPEndpoint struct {
	uc uc
}

// Add creates and stores an authenticator seed.
// @Summary Add token
// @Description Generates a fresh seed under a sanitized service label and returns it exactly once, with its provisioning URI and QR image. Labels are unique per user.
// @Tags Vault
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddTokenRequest true "Token payload"
// @Success 200 {object} router.successResponse{data=AddTokenResponse} "Stored token"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 409 {object} router.errorResponse "Token for service already exists"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/vault/tokens [post]
func (h *HTTPEndpoint) Add(r *router.Request) (any, error) {
	var req AddTokenRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Add(r.Context(), usecase.AddInput{Service: req.Service})
	if err != nil {
		return nil, err
	}

	return AddTokenResponse{
		ID:        resp.ID,
		Service:   resp.Service,
		Secret:    resp.Secret,
		URI:       resp.URI,
		QRCode:    resp.QRCode,
		CreatedAt: resp.CreatedAt,
	}, nil
}

// List returns stored tokens with their current codes.
// @Summary List tokens
// @Description Returns all stored tokens with the code each produces right now, in creation order.
// @Tags Vault
// @Produce json
// @Security BearerAuth
// @Success 200 {object} router.successResponse{data=ListTokensResponse} "Stored tokens"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/vault/tokens [get]
func (h *HTTPEndpoint) List(r *router.Request) (any, error) {
	resp, err := h.uc.List(r.Context())
	if err != nil {
		return nil, err
	}

	return ListTokensResponse{
		Tokens: lo.Map(resp.Tokens, func(t entity.TokenCode, _ int) TokenCodeResponse {
			return TokenCodeResponse{
				ID:               t.ID,
				Service:          t.Service,
				Code:             t.Code,
				SecondsRemaining: t.SecondsRemaining,
				CreatedAt:        t.CreatedAt,
			}
		}),
	}, nil
}

// Delete removes a stored token.
// @Summary Delete token
// @Description Removes the token with the given id. Tokens owned by other users report not found.
// @Tags Vault
// @Produce json
// @Security BearerAuth
// @Param id path int true "Token id"
// @Success 200 {object} router.successResponse{data=DeleteTokenResponse} "Deletion result"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 404 {object} router.errorResponse "Token not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/vault/tokens/{id} [delete]
func (h *HTTPEndpoint) Delete(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	if err := h.uc.Delete(r.Context(), usecase.DeleteInput{ID: uint64(id)}); err != nil {
		return nil, err
	}

	return DeleteTokenResponse{}, nil
}

// Export returns all stored tokens with seeds in the clear.
// @Summary Export tokens
// @Description Returns every stored token with its decrypted seed, in the shape the import endpoint accepts.
// @Tags Vault
// @Produce json
// @Security BearerAuth
// @Success 200 {object} router.successResponse{data=ExportResponse} "Exported tokens"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/vault/export [get]
func (h *HTTPEndpoint) Export(r *router.Request) (any, error) {
	resp, err := h.uc.Export(r.Context())
	if err != nil {
		return nil, err
	}

	return ExportResponse{
		Tokens: lo.Map(resp.Tokens, func(e entity.ExportEntry, _ int) ExportEntryResponse {
			return ExportEntryResponse{Service: e.Service, Secret: e.Secret}
		}),
	}, nil
}

// Import stores a batch of tokens from an export.
// @Summary Import tokens
// @Description Accepts an export payload as a JSON body or as a multipart file named "file" and stores the batch atomically. Invalid entries and existing services are skipped. An optional Idempotency-Key header makes retries safe.
// @Tags Vault
// @Accept json
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param request body ImportRequest false "Import payload"
// @Param Idempotency-Key header string false "Retry-safe batch key"
// @Success 200 {object} router.successResponse{data=ImportResponse} "Import result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 409 {object} router.errorResponse "Import already processed"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/vault/import [post]
func (h *HTTPEndpoint) Import(r *router.Request) (any, error) {
	var req ImportRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, err := r.StreamSingleFile("file")
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := file.Close(); err != nil {
				slog.ErrorContext(r.Context(), "failed to close file", "error", err)
			}
		}()

		dec := json.NewDecoder(file)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			return nil, goerror.NewInvalidFormat()
		}
	} else if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Import(r.Context(), usecase.ImportInput{
		Entries: lo.Map(req.Tokens, func(e ImportEntryRequest, _ int) usecase.ImportEntryInput {
			return usecase.ImportEntryInput{Service: e.Service, Secret: e.Secret}
		}),
		IdempotencyKey: r.Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return nil, err
	}

	return ImportResponse{
		Imported: resp.Imported,
		Skipped:  resp.Skipped,
	}, nil
}
