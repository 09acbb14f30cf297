package handlers

import (
	"github.com/gofiber/fiber/v3"
	qrcode "github.com/skip2/go-qrcode"
)

const qrSize = 256

// QRHandler renders share links as QR codes.
type QRHandler struct {
	baseURL string
}

// NewQRHandler creates a new QR handler. baseURL is the deployment origin
// the encoded share URLs point at.
func NewQRHandler(baseURL string) *QRHandler {
	return &QRHandler{baseURL: baseURL}
}

// Image encodes the share URL for the query string as a PNG QR code.
func (h *QRHandler) Image(c fiber.Ctx) error {
	query := string(c.Request().URI().QueryString())
	if query == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing event")
	}

	png, err := qrcode.Encode(h.baseURL+"/share?"+query, qrcode.Medium, qrSize)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "event too large for QR code")
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
