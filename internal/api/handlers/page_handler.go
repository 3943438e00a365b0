package handlers

import (
	"Purchase-Tracker/domain"
	"Purchase-Tracker/internal/view"
	"Purchase-Tracker/pkg/category"
	"Purchase-Tracker/pkg/manager"
	"Purchase-Tracker/pkg/maps"
	"Purchase-Tracker/pkg/product"
	"Purchase-Tracker/pkg/share"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type (
	PageHandler interface {
		Index(c *fiber.Ctx) error
		SaveProduct(c *fiber.Ctx) error
		DeleteProduct(c *fiber.Ctx) error
		ShareProduct(c *fiber.Ctx) error
		ShareQRCode(c *fiber.Ctx) error
		AddCategory(c *fiber.Ctx) error
		DeleteCategory(c *fiber.Ctx) error
		SharedProduct(c *fiber.Ctx) error
	}

	pageHandler struct {
		categoryService category.CategoryService
		productService  product.ProductService
		shareService    share.ShareService
		engine          *view.Engine
		validator       *validator.Validate
		mapsConfig      maps.Config
		appURL          string
		now             func() time.Time
	}
)

func NewPageHandler(
	categoryService category.CategoryService,
	productService product.ProductService,
	shareService share.ShareService,
	engine *view.Engine,
	validator *validator.Validate,
	mapsConfig maps.Config,
	appURL string,
) PageHandler {
	return &pageHandler{
		categoryService: categoryService,
		productService:  productService,
		shareService:    shareService,
		engine:          engine,
		validator:       validator,
		mapsConfig:      mapsConfig,
		appURL:          appURL,
		now:             time.Now,
	}
}

// Index renders the management view. Query parameters: q, category, store for
// filtering, edit=<id> or new=1 to open the product form, share=<id> to open
// the share dialog and qr=1 to show its QR code.
func (h *pageHandler) Index(c *fiber.Ctx) error {
	m := h.load(c)
	page := h.indexPage(m)

	if m.Err() == nil {
		if id := c.Query("edit"); id != "" {
			p, ok := m.Product(id)
			if !ok {
				return h.renderIndex(c, page, fiber.StatusNotFound, domain.ErrProductNotFound)
			}
			page.Form = view.ProductFormFromResponse(p)
		} else if c.Query("new") != "" {
			page.Form = view.NewProductForm(h.now())
		}

		if id := c.Query("share"); id != "" {
			res, err := m.Share(c.Context(), id, originOf(c, h.appURL))
			if err != nil {
				return h.renderIndex(c, h.indexPage(m), statusFor(err), err)
			}
			form := page.Form
			page = h.indexPage(m)
			page.Form = form
			page.Share = &view.SharePanel{ProductID: id, ShowQR: c.Query("qr") != "", ShareResponse: res}
		}
	}

	status := fiber.StatusOK
	if m.Err() != nil {
		status = fiber.StatusInternalServerError
	}
	return h.renderIndex(c, page, status, m.Err())
}

// SaveProduct creates (POST /products) or updates (POST /products/:id) a product
// from the submitted form.
func (h *pageHandler) SaveProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	m := h.load(c)

	req, err := parseProductRequest(c)
	if err == nil {
		err = replayPicker(c.Context(), c, &req)
	}
	if err == nil {
		err = h.validator.Struct(req)
	}
	if err == nil {
		_, err = m.SaveProduct(c.Context(), id, req, formImage(c))
	}
	if err != nil {
		page := h.indexPage(m)
		form := view.ProductFormFromRequest(id, req)
		if existing, ok := m.Product(id); ok {
			form.ImageURL = existing.ImageURL
		}
		page.Form = form
		return h.renderIndex(c, page, statusFor(err), err)
	}

	return c.Redirect("/", fiber.StatusSeeOther)
}

func (h *pageHandler) DeleteProduct(c *fiber.Ctx) error {
	m := h.load(c)
	if err := m.DeleteProduct(c.Context(), c.Params("id"), h.confirmer(c)); err != nil {
		return h.renderIndex(c, h.indexPage(m), statusFor(err), err)
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

func (h *pageHandler) ShareProduct(c *fiber.Ctx) error {
	m := h.load(c)
	id := c.Params("id")
	if _, err := m.Share(c.Context(), id, originOf(c, h.appURL)); err != nil {
		return h.renderIndex(c, h.indexPage(m), statusFor(err), err)
	}
	return c.Redirect("/?share="+id, fiber.StatusSeeOther)
}

func (h *pageHandler) ShareQRCode(c *fiber.Ctx) error {
	return sendQRCode(c, h.shareService, h.appURL)
}

func (h *pageHandler) AddCategory(c *fiber.Ctx) error {
	m := h.load(c)
	req := domain.CategoryRequest{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
	}

	err := h.validator.Struct(req)
	if err == nil {
		_, err = m.AddCategory(c.Context(), req)
	}
	if err != nil {
		page := h.indexPage(m)
		page.CategoryForm = req
		return h.renderIndex(c, page, statusFor(err), err)
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

func (h *pageHandler) DeleteCategory(c *fiber.Ctx) error {
	m := h.load(c)
	if err := m.DeleteCategory(c.Context(), c.Params("id"), h.confirmer(c)); err != nil {
		return h.renderIndex(c, h.indexPage(m), statusFor(err), err)
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// SharedProduct is the public read-only page behind a share link.
func (h *pageHandler) SharedProduct(c *fiber.Ctx) error {
	p, found, err := h.shareService.Lookup(c.Context(), c.Params("token"))
	if err != nil {
		log.Errorf("error looking up shared product: %v", err)
		return h.render(c, fiber.StatusInternalServerError, "not_found", view.TemplateData{
			Title: "Something went wrong",
			Error: domain.MessageFailedProcessRequest,
		})
	}
	if !found {
		return h.render(c, fiber.StatusNotFound, "not_found", view.TemplateData{Title: "Product not found"})
	}

	page := view.SharedPage{Product: share.ToSharedProductResponse(p)}
	if p.HasLocation() {
		page.Map, err = view.DisplayView(*p.Latitude, *p.Longitude, p.Store)
		if err != nil {
			log.Errorf("error mounting map display: %v", err)
		}
	}

	return h.render(c, fiber.StatusOK, "shared", view.TemplateData{
		Title: p.Name,
		Data:  page,
	})
}

// load builds a fresh manager for the request and fetches both lists. A load
// failure is kept in the manager and rendered as a banner.
func (h *pageHandler) load(c *fiber.Ctx) *manager.Manager {
	m := manager.New(h.categoryService, h.productService, h.shareService)
	m.SetFilter(domain.ProductFilter{
		Query:      c.Query("q"),
		CategoryID: c.Query("category"),
		Store:      c.Query("store"),
	})
	_ = m.Load(c.Context())
	return m
}

func (h *pageHandler) confirmer(c *fiber.Ctx) manager.Confirmer {
	return manager.ConfirmFunc(func(string) bool { return confirmed(c) })
}

func (h *pageHandler) indexPage(m *manager.Manager) view.IndexPage {
	shown, total := m.Counts()
	return view.IndexPage{
		Products:        view.NewProductRows(m.Visible()),
		Categories:      m.Categories(),
		Stores:          m.Stores(),
		Filter:          m.Filter(),
		Shown:           shown,
		Total:           total,
		Suggestions:     m.Suggestions(),
		CopiedAckMillis: share.CopiedAckDuration.Milliseconds(),
	}
}

func (h *pageHandler) renderIndex(c *fiber.Ctx, page view.IndexPage, status int, err error) error {
	data := view.TemplateData{
		Title: "Purchase Tracker",
		Data:  page,
	}
	if err != nil {
		data.Error = err.Error()
	}
	return h.render(c, status, "index", data)
}

func (h *pageHandler) render(c *fiber.Ctx, status int, name string, data view.TemplateData) error {
	data.CurrentPath = c.Path()
	data.Maps = h.mapsConfig
	c.Status(status)
	c.Type("html", "utf-8")
	if err := h.engine.Render(c, name, data); err != nil {
		log.Errorf("error rendering %s: %v", name, err)
		return fiber.NewError(fiber.StatusInternalServerError, domain.MessageFailedProcessRequest)
	}
	return nil
}
