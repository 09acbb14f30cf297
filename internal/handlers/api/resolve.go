package api

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"

	"calshare/internal/crypto"
	"calshare/internal/metrics"
	"calshare/internal/models"
	"calshare/internal/share"
)

// ResolveHandler reconstructs events from share links via the JSON API.
type ResolveHandler struct{}

// NewResolveHandler creates a new API resolve handler.
func NewResolveHandler() *ResolveHandler {
	return &ResolveHandler{}
}

// Resolve decodes a share URL back into its event. Protected links need the
// password in the same request; without it the response just flags that one
// is required.
func (h *ResolveHandler) Resolve(c fiber.Ctx) error {
	var body struct {
		URL      string `json:"url"`
		Password string `json:"password"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if body.URL == "" {
		return jsonError(c, fiber.StatusBadRequest, "url is required")
	}

	ev, locked, err := share.ResolveFromLink(body.URL)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "this link looks corrupted")
	}

	if locked != nil {
		if body.Password == "" {
			return jsonSuccess(c, models.ResolveResponse{NeedsPassword: true})
		}
		ev, err = share.ResolveProtected(locked.Cipher, body.Password)
		if err != nil {
			switch {
			case errors.Is(err, crypto.ErrDecryptionFailed):
				metrics.RecordDecrypt(metrics.DecryptWrongPassword)
				return jsonError(c, fiber.StatusUnauthorized, "wrong password or corrupted link")
			case errors.Is(err, crypto.ErrInvalidFormat), errors.Is(err, crypto.ErrInvalidIterationCount):
				metrics.RecordDecrypt(metrics.DecryptInvalidToken)
				return jsonError(c, fiber.StatusBadRequest, "this link looks corrupted")
			default:
				return jsonError(c, fiber.StatusInternalServerError, "failed to resolve link")
			}
		}
		metrics.RecordDecrypt(metrics.DecryptOK)
	}

	if ev.Title == "" || ev.StartDate == "" {
		return jsonError(c, fiber.StatusBadRequest, "this link looks corrupted")
	}
	return jsonSuccess(c, models.ResolveResponse{Event: ev})
}
