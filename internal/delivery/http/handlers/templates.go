package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/LavaJover/restaurant-orders/internal/domain"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageIndex        = "index.html"
	pageOrderDetails = "order_details.html"
	pageCreateOrder  = "create_order.html"
	pageUpdateOrder  = "update_order.html"
	pageDeleteOrder  = "delete_order.html"
	pageSearchOrders = "search_orders.html"
	pageRevenue      = "revenue.html"
	pageNotFound     = "not_found.html"
)

var pageNames = []string{
	pageIndex,
	pageOrderDetails,
	pageCreateOrder,
	pageUpdateOrder,
	pageDeleteOrder,
	pageSearchOrders,
	pageRevenue,
	pageNotFound,
}

var templateFuncs = template.FuncMap{
	"money": func(d decimal.Decimal) string {
		return d.StringFixed(2)
	},
	"statusLabel": func(s domain.OrderStatus) string {
		return s.Label()
	},
}

// Templates holds one parsed set per page, each with the shared layout.
type Templates struct {
	pages map[string]*template.Template
}

func LoadTemplates() (*Templates, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New(name).Funcs(templateFuncs).ParseFS(
			templateFS,
			"templates/base.html",
			"templates/partials.html",
			"templates/"+name,
		)
		if err != nil {
			return nil, errors.Wrapf(err, "parse template %s", name)
		}
		pages[name] = tmpl
	}
	return &Templates{pages: pages}, nil
}

// Render executes the page into a buffer first so a template failure never
// leaves a half written response.
func (t *Templates) Render(w http.ResponseWriter, status int, name string, data interface{}) {
	tmpl, ok := t.pages[name]
	if !ok {
		log.WithField("template", name).Error("unknown template")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		log.WithError(err).WithField("template", name).Error("render template")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.WithError(err).Error("write response body")
	}
}
