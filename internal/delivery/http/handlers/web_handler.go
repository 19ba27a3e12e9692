package handlers

import (
	"fmt"
	"net/http"

	"github.com/LavaJover/restaurant-orders/internal/domain"
	orderdto "github.com/LavaJover/restaurant-orders/internal/usecase/dto/order"
	usecase "github.com/LavaJover/restaurant-orders/internal/usecase/order"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type OrderWebHandler struct {
	uc               usecase.OrderUsecase
	templates        *Templates
	defaultExtraRows int
}

func NewOrderWebHandler(uc usecase.OrderUsecase, templates *Templates, defaultExtraRows int) *OrderWebHandler {
	return &OrderWebHandler{
		uc:               uc,
		templates:        templates,
		defaultExtraRows: defaultExtraRows,
	}
}

type indexPage struct {
	Orders         []*domain.Order
	Statuses       []domain.OrderStatus
	SelectedStatus domain.OrderStatus
}

type orderPage struct {
	Order *domain.Order
}

type orderFormPage struct {
	Order     *domain.Order
	Form      orderForm
	Statuses  []domain.OrderStatus
	NextExtra int
}

type searchPage struct {
	Submitted bool
	ID        string
	Status    string
	Errors    map[string][]string
	Statuses  []domain.OrderStatus
	Results   []*domain.Order
}

type revenuePage struct {
	Stats *domain.RevenueStats
}

func (h *OrderWebHandler) Index(w http.ResponseWriter, r *http.Request) {
	page := indexPage{Statuses: domain.OrderStatuses()}

	raw := r.URL.Query().Get("status")
	if raw == "" {
		orders, err := h.uc.ListOrders(r.Context(), nil)
		if err != nil {
			h.serverError(w, r, err)
			return
		}
		page.Orders = orders
	} else if status, err := domain.ParseOrderStatus(raw); err == nil {
		orders, err := h.uc.ListOrders(r.Context(), &status)
		if err != nil {
			h.serverError(w, r, err)
			return
		}
		page.Orders = orders
		page.SelectedStatus = status
	}
	// неизвестный статус ничему не соответствует, список пуст

	h.templates.Render(w, http.StatusOK, pageIndex, page)
}

func (h *OrderWebHandler) Details(w http.ResponseWriter, r *http.Request) {
	order, ok := h.loadOrder(w, r)
	if !ok {
		return
	}
	h.templates.Render(w, http.StatusOK, pageOrderDetails, orderPage{Order: order})
}

func (h *OrderWebHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	cfg := formConfigFromRequest(r, h.defaultExtraRows)

	var form orderForm
	form.appendBlankRows(cfg.ExtraBlankRows)

	h.templates.Render(w, http.StatusOK, pageCreateOrder, orderFormPage{
		Form:      form,
		NextExtra: cfg.ExtraBlankRows + 1,
	})
}

func (h *OrderWebHandler) Create(w http.ResponseWriter, r *http.Request) {
	form, values, verr := parseOrderForm(r, false)
	if verr != nil {
		h.templates.Render(w, http.StatusBadRequest, pageCreateOrder, orderFormPage{
			Form:      form,
			NextExtra: len(form.Rows) + 1,
		})
		return
	}

	// веб-форма всегда создаёт заказ в ожидании
	_, err := h.uc.CreateOrder(r.Context(), &orderdto.CreateOrderInput{
		TableNumber: values.tableNumber,
		Status:      domain.StatusPending,
		Items:       values.items,
	})
	if err != nil {
		var ucErr *domain.ValidationError
		if errors.As(err, &ucErr) {
			form.applyErrors(remapItemErrors(ucErr, values.positions))
			h.templates.Render(w, http.StatusBadRequest, pageCreateOrder, orderFormPage{
				Form:      form,
				NextExtra: len(form.Rows) + 1,
			})
			return
		}
		h.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *OrderWebHandler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	order, ok := h.loadOrder(w, r)
	if !ok {
		return
	}

	cfg := formConfigFromRequest(r, 0)
	form := newOrderFormFromOrder(order)
	form.appendBlankRows(cfg.ExtraBlankRows)

	h.templates.Render(w, http.StatusOK, pageUpdateOrder, orderFormPage{
		Order:     order,
		Form:      form,
		Statuses:  domain.OrderStatuses(),
		NextExtra: cfg.ExtraBlankRows + 1,
	})
}

func (h *OrderWebHandler) Update(w http.ResponseWriter, r *http.Request) {
	order, ok := h.loadOrder(w, r)
	if !ok {
		return
	}

	rerender := func(form orderForm) {
		h.templates.Render(w, http.StatusBadRequest, pageUpdateOrder, orderFormPage{
			Order:     order,
			Form:      form,
			Statuses:  domain.OrderStatuses(),
			NextExtra: 1,
		})
	}

	form, values, verr := parseOrderForm(r, true)
	if verr != nil {
		rerender(form)
		return
	}

	_, err := h.uc.UpdateOrder(r.Context(), order.ID, &orderdto.UpdateOrderInput{
		TableNumber: &values.tableNumber,
		Status:      values.status,
		SyncItems:   true,
		Items:       values.items,
	})
	if err != nil {
		var ucErr *domain.ValidationError
		switch {
		case errors.As(err, &ucErr):
			form.applyErrors(remapItemErrors(ucErr, values.positions))
			rerender(form)
		case errors.Is(err, domain.ErrOrderNotFound):
			h.notFound(w)
		default:
			h.serverError(w, r, err)
		}
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// DeleteConfirm renders the confirmation page for POST /order/{id}/delete.
func (h *OrderWebHandler) DeleteConfirm(w http.ResponseWriter, r *http.Request) {
	order, ok := h.loadOrder(w, r)
	if !ok {
		return
	}
	h.templates.Render(w, http.StatusOK, pageDeleteOrder, orderPage{Order: order})
}

func (h *OrderWebHandler) Delete(w http.ResponseWriter, r *http.Request) {
	orderID, ok := orderIDFromPath(r)
	if !ok {
		h.notFound(w)
		return
	}

	if err := h.uc.DeleteOrder(r.Context(), orderID); err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			h.notFound(w)
			return
		}
		h.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// DeleteItem removes one item and sends the visitor back to its order's
// edit page.
func (h *OrderWebHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := orderIDFromPath(r)
	if !ok {
		h.notFound(w)
		return
	}

	orderID, err := h.uc.DeleteItem(r.Context(), itemID)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) || errors.Is(err, domain.ErrOrderNotFound) {
			h.notFound(w)
			return
		}
		h.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/order/%d/update", orderID), http.StatusSeeOther)
}

// Search shows an empty form until it is submitted. A submitted form with
// no criteria matches every order.
func (h *OrderWebHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page := searchPage{
		Statuses: domain.OrderStatuses(),
		Errors:   map[string][]string{},
	}
	if len(query) == 0 {
		h.templates.Render(w, http.StatusOK, pageSearchOrders, page)
		return
	}

	page.Submitted = true
	page.ID = query.Get("id")
	page.Status = query.Get("status")

	filter, err := filterFromQuery(r)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			page.Errors = verr.Fields
			h.templates.Render(w, http.StatusOK, pageSearchOrders, page)
			return
		}
		h.serverError(w, r, err)
		return
	}

	results, err := h.uc.SearchOrders(r.Context(), filter)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	page.Results = results
	if filter.Status != nil {
		page.Status = string(*filter.Status)
	}

	h.templates.Render(w, http.StatusOK, pageSearchOrders, page)
}

func (h *OrderWebHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	stats, err := h.uc.GetRevenueStats(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.templates.Render(w, http.StatusOK, pageRevenue, revenuePage{Stats: stats})
}

// NotFound is installed as the router's fallback handler.
func (h *OrderWebHandler) NotFound(w http.ResponseWriter, _ *http.Request) {
	h.notFound(w)
}

func (h *OrderWebHandler) loadOrder(w http.ResponseWriter, r *http.Request) (*domain.Order, bool) {
	orderID, ok := orderIDFromPath(r)
	if !ok {
		h.notFound(w)
		return nil, false
	}

	order, err := h.uc.GetOrderByID(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			h.notFound(w)
			return nil, false
		}
		h.serverError(w, r, err)
		return nil, false
	}
	return order, true
}

func (h *OrderWebHandler) notFound(w http.ResponseWriter) {
	h.templates.Render(w, http.StatusNotFound, pageNotFound, nil)
}

func (h *OrderWebHandler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	log.WithFields(log.Fields{
		"method": r.Method,
		"url":    r.URL.String(),
	}).WithError(err).Error("web request failed")
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
