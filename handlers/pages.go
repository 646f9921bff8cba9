package handlers

import (
	"net/http"

	"github.com/packwoodplates/site/internal"
	"github.com/packwoodplates/site/internal/prefill"
	"github.com/packwoodplates/site/pkg/id"
	"github.com/packwoodplates/site/views"
)

// PageHandler serves the HTML pages.
type PageHandler struct {
	site views.Site
}

// NewPageHandler creates a page handler.
func NewPageHandler(site views.Site) *PageHandler {
	return &PageHandler{site: site}
}

// Routes implements internal.Handler.
func (h *PageHandler) Routes(r internal.Router) {
	r.GET("/", h.home)
	r.GET("/contact", h.contact)
}

func (h *PageHandler) home(c internal.Context) error {
	return c.Redirect(http.StatusFound, "/contact")
}

// contact renders the contact page with details prefilled from the
// referral query, if any.
func (h *PageHandler) contact(c internal.Context) error {
	form := views.NewForm(id.New(), prefill.Derive(c.Request().URL.Query()))
	return c.RenderPartial(http.StatusOK,
		views.ContactPage(h.site, form),
		views.ContactForm(form),
	)
}
