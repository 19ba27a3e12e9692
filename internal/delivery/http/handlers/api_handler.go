package handlers

import (
	"net/http"
	"strconv"

	"github.com/LavaJover/restaurant-orders/internal/delivery/http/dto/order/request"
	"github.com/LavaJover/restaurant-orders/internal/delivery/http/dto/order/response"
	"github.com/LavaJover/restaurant-orders/internal/domain"
	usecase "github.com/LavaJover/restaurant-orders/internal/usecase/order"
	"github.com/gorilla/mux"
)

type OrderAPIHandler struct {
	uc usecase.OrderUsecase
}

func NewOrderAPIHandler(uc usecase.OrderUsecase) *OrderAPIHandler {
	return &OrderAPIHandler{uc: uc}
}

// List serves GET /api/orders/. Optional ?status= and ?id= narrow the result.
func (h *OrderAPIHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	orders, err := h.uc.SearchOrders(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, response.NewOrderListResponse(orders))
}

func (h *OrderAPIHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := request.DecodeOrderWrite(r.Body, request.OpCreate)
	if err != nil {
		writeError(w, r, err)
		return
	}

	order, err := h.uc.CreateOrder(r.Context(), req.ToCreateInput())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, response.NewOrderResponse(order))
}

func (h *OrderAPIHandler) Retrieve(w http.ResponseWriter, r *http.Request) {
	orderID, ok := orderIDFromPath(r)
	if !ok {
		writeError(w, r, domain.ErrOrderNotFound)
		return
	}

	order, err := h.uc.GetOrderByID(r.Context(), orderID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, response.NewOrderResponse(order))
}

// Update serves PUT; absent fields other than table_number keep their values.
func (h *OrderAPIHandler) Update(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, request.OpUpdate)
}

// PartialUpdate serves PATCH.
func (h *OrderAPIHandler) PartialUpdate(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, request.OpPartialUpdate)
}

func (h *OrderAPIHandler) update(w http.ResponseWriter, r *http.Request, kind request.OperationKind) {
	orderID, ok := orderIDFromPath(r)
	if !ok {
		writeError(w, r, domain.ErrOrderNotFound)
		return
	}

	req, err := request.DecodeOrderWrite(r.Body, kind)
	if err != nil {
		writeError(w, r, err)
		return
	}

	order, err := h.uc.UpdateOrder(r.Context(), orderID, req.ToUpdateInput())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, response.NewOrderResponse(order))
}

func (h *OrderAPIHandler) Delete(w http.ResponseWriter, r *http.Request) {
	orderID, ok := orderIDFromPath(r)
	if !ok {
		writeError(w, r, domain.ErrOrderNotFound)
		return
	}

	if err := h.uc.DeleteOrder(r.Context(), orderID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *OrderAPIHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	stats, err := h.uc.GetRevenueStats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, response.NewRevenueResponse(stats))
}

// orderIDFromPath reads {id}. Anything that is not a positive integer cannot
// name an order.
func orderIDFromPath(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// filterFromQuery builds a search filter from ?id= and ?status=. Empty
// parameters are ignored.
func filterFromQuery(r *http.Request) (domain.OrderFilter, error) {
	var filter domain.OrderFilter
	verr := domain.NewValidationError()
	query := r.URL.Query()

	id, err := request.ParseItemID(query.Get("id"))
	if err != nil {
		verr.Add("id", err.Error())
	}
	filter.ID = id

	if raw := query.Get("status"); raw != "" {
		status, err := domain.ParseOrderStatus(raw)
		if err != nil {
			verr.Add("status", err.Error()+".")
		} else {
			filter.Status = &status
		}
	}

	return filter, verr.OrNil()
}
