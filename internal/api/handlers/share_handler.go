package handlers

import (
	"Purchase-Tracker/domain"
	"Purchase-Tracker/internal/api/presenters"
	"Purchase-Tracker/pkg/share"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type (
	ShareHandler interface {
		ShareProduct(c *fiber.Ctx) error
		ShareQRCode(c *fiber.Ctx) error
		EmailShareLink(c *fiber.Ctx) error
		GetSharedProduct(c *fiber.Ctx) error
	}

	shareHandler struct {
		shareService share.ShareService
		validator    *validator.Validate
		appURL       string
	}
)

// NewShareHandler builds share links against appURL, or against the request's
// own origin when appURL is empty.
func NewShareHandler(shareService share.ShareService, validator *validator.Validate, appURL string) ShareHandler {
	return &shareHandler{
		shareService: shareService,
		validator:    validator,
		appURL:       appURL,
	}
}

func (h *shareHandler) ShareProduct(c *fiber.Ctx) error {
	res, err := h.shareService.Share(c.Context(), c.Params("id"), originOf(c, h.appURL))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedShareProduct, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessShareProduct)
}

func (h *shareHandler) ShareQRCode(c *fiber.Ctx) error {
	return sendQRCode(c, h.shareService, h.appURL)
}

func (h *shareHandler) EmailShareLink(c *fiber.Ctx) error {
	req := new(domain.ShareEmailRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedEmailShareLink, err)
	}

	res, err := h.shareService.EmailLink(c.Context(), c.Params("id"), originOf(c, h.appURL), req.Email)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedEmailShareLink, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessEmailShareLink)
}

func (h *shareHandler) GetSharedProduct(c *fiber.Ctx) error {
	p, found, err := h.shareService.Lookup(c.Context(), c.Params("token"))
	if err != nil {
		log.Errorf("error looking up shared product: %v", err)
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedProcessRequest, err)
	}
	if !found {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageSharedProductNotFound, nil)
	}

	return presenters.SuccessResponse(c, share.ToSharedProductResponse(p), fiber.StatusOK, domain.MessageSuccessGetSharedProduct)
}

// sendQRCode shares the product and answers with the link as a PNG QR code.
func sendQRCode(c *fiber.Ctx, shareService share.ShareService, appURL string) error {
	res, err := shareService.Share(c.Context(), c.Params("id"), originOf(c, appURL))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedShareProduct, err)
	}

	png, err := shareService.QRCode(res.URL)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGenerateQRCode, err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="share-qr.png"`)
	return c.Send(png)
}

func originOf(c *fiber.Ctx, appURL string) string {
	if appURL != "" {
		return strings.TrimRight(appURL, "/")
	}
	return c.BaseURL()
}
