package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/LavaJover/restaurant-orders/internal/delivery/http/dto/order/request"
	"github.com/LavaJover/restaurant-orders/internal/domain"
	orderdto "github.com/LavaJover/restaurant-orders/internal/usecase/dto/order"
)

const (
	maxExtraBlankRows = 20
	// потолок для items-total, чтобы не крутить цикл по мусорному значению
	maxSubmittedRows = 1000
)

// FormConfig is built per request so one visitor's ?extra= never leaks into
// another's form.
type FormConfig struct {
	ExtraBlankRows int
}

func formConfigFromRequest(r *http.Request, defaultRows int) FormConfig {
	cfg := FormConfig{ExtraBlankRows: defaultRows}
	if raw := r.URL.Query().Get("extra"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			cfg.ExtraBlankRows = n
		}
	}
	if cfg.ExtraBlankRows > maxExtraBlankRows {
		cfg.ExtraBlankRows = maxExtraBlankRows
	}
	if cfg.ExtraBlankRows < 0 {
		cfg.ExtraBlankRows = 0
	}
	return cfg
}

type itemRow struct {
	Index       int
	ID          string
	Item        string
	Price       string
	IDErrors    []string
	ItemErrors  []string
	PriceErrors []string
}

// orderForm holds what the visitor typed, so a rejected form is rendered back
// unchanged with messages next to the offending fields.
type orderForm struct {
	TableNumber       string
	Status            string
	Rows              []itemRow
	TableNumberErrors []string
	StatusErrors      []string
	NonFieldErrors    []string
}

// orderFormValues is the parsed, valid part of a submission. positions maps
// an index in items back to the form row it came from.
type orderFormValues struct {
	tableNumber int
	status      *domain.OrderStatus
	items       []orderdto.ItemInput
	positions   []int
}

func (f *orderForm) appendBlankRows(n int) {
	for i := 0; i < n; i++ {
		f.Rows = append(f.Rows, itemRow{Index: len(f.Rows)})
	}
}

func newOrderFormFromOrder(order *domain.Order) orderForm {
	form := orderForm{
		TableNumber: strconv.Itoa(order.TableNumber),
		Status:      string(order.Status),
		Rows:        make([]itemRow, 0, len(order.Items)),
	}
	for i, item := range order.Items {
		form.Rows = append(form.Rows, itemRow{
			Index: i,
			ID:    strconv.FormatUint(uint64(item.ID), 10),
			Item:  item.Name,
			Price: item.Price.StringFixed(2),
		})
	}
	return form
}

// parseOrderForm reads a create or update submission. Rows where both the
// name and the price are blank, or that are marked for deletion, are skipped.
func parseOrderForm(r *http.Request, withStatus bool) (orderForm, orderFormValues, *domain.ValidationError) {
	var (
		form   orderForm
		values orderFormValues
	)
	verr := domain.NewValidationError()

	form.TableNumber = r.PostFormValue("table_number")
	n, err := request.ParseTableNumber(form.TableNumber)
	if err != nil {
		verr.Add("table_number", err.Error())
	}
	values.tableNumber = n

	if withStatus {
		form.Status = r.PostFormValue("status")
		status, err := domain.ParseOrderStatus(form.Status)
		if err != nil {
			verr.Add("status", err.Error()+".")
		} else {
			values.status = &status
			form.Status = string(status)
		}
	}

	total, err := strconv.Atoi(r.PostFormValue("items-total"))
	if err != nil || total < 0 {
		total = 0
	}
	if total > maxSubmittedRows {
		total = maxSubmittedRows
	}

	values.items = make([]orderdto.ItemInput, 0, total)
	for i := 0; i < total; i++ {
		row := itemRow{
			Index: i,
			ID:    strings.TrimSpace(r.PostFormValue(rowField(i, "id"))),
			Item:  r.PostFormValue(rowField(i, "item")),
			Price: strings.TrimSpace(r.PostFormValue(rowField(i, "price"))),
		}
		form.Rows = append(form.Rows, row)

		if r.PostFormValue(rowField(i, "DELETE")) != "" {
			continue
		}
		if strings.TrimSpace(row.Item) == "" && row.Price == "" {
			continue
		}

		input := orderdto.ItemInput{Name: row.Item}
		prefix := fmt.Sprintf("items[%d].", i)

		id, err := request.ParseItemID(row.ID)
		if err != nil {
			verr.Add(prefix+"id", err.Error())
		}
		input.ID = id

		if err := request.ValidateItemName(row.Item); err != nil {
			verr.Add(prefix+"item", err.Error())
		}
		price, err := request.ParsePrice(row.Price)
		if err != nil {
			verr.Add(prefix+"price", err.Error())
		}
		input.Price = price

		values.items = append(values.items, input)
		values.positions = append(values.positions, i)
	}

	if verr.HasErrors() {
		form.applyErrors(verr)
		return form, values, verr
	}
	return form, values, nil
}

func rowField(i int, name string) string {
	return fmt.Sprintf("items-%d-%s", i, name)
}

// remapItemErrors rewrites usecase errors keyed by position in the submitted
// item list to the form row numbering.
func remapItemErrors(verr *domain.ValidationError, positions []int) *domain.ValidationError {
	out := domain.NewValidationError()
	for key, messages := range verr.Fields {
		var (
			pos   int
			field string
		)
		if n, _ := fmt.Sscanf(key, "items[%d].%s", &pos, &field); n == 2 && pos >= 0 && pos < len(positions) {
			key = fmt.Sprintf("items[%d].%s", positions[pos], field)
		}
		for _, msg := range messages {
			out.Add(key, msg)
		}
	}
	return out
}

func (f *orderForm) applyErrors(verr *domain.ValidationError) {
	for key, messages := range verr.Fields {
		switch key {
		case "table_number":
			f.TableNumberErrors = append(f.TableNumberErrors, messages...)
			continue
		case "status":
			f.StatusErrors = append(f.StatusErrors, messages...)
			continue
		}

		var (
			row   int
			field string
		)
		if n, _ := fmt.Sscanf(key, "items[%d].%s", &row, &field); n == 2 && row >= 0 && row < len(f.Rows) {
			switch field {
			case "id":
				f.Rows[row].IDErrors = append(f.Rows[row].IDErrors, messages...)
				continue
			case "item":
				f.Rows[row].ItemErrors = append(f.Rows[row].ItemErrors, messages...)
				continue
			case "price":
				f.Rows[row].PriceErrors = append(f.Rows[row].PriceErrors, messages...)
				continue
			}
		}
		f.NonFieldErrors = append(f.NonFieldErrors, messages...)
	}
}
