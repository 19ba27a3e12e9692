package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/LavaJover/restaurant-orders/internal/domain"
	orderdto "github.com/LavaJover/restaurant-orders/internal/usecase/dto/order"
	"github.com/shopspring/decimal"
)

// OperationKind tells the decoder which write payload rules apply.
type OperationKind int

const (
	OpCreate OperationKind = iota
	OpUpdate
	OpPartialUpdate
)

func (k OperationKind) String() string {
	switch k {
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpPartialUpdate:
		return "partial_update"
	}
	return fmt.Sprintf("OperationKind(%d)", int(k))
}

type ItemRequest struct {
	ID    *uint           `json:"id,omitempty"`
	Item  *string         `json:"item"`
	Price json.RawMessage `json:"price"`
}

// OrderWriteRequest is the create/update shaped payload. total_price is not
// part of it; anything a client sends there is dropped by the decoder.
type OrderWriteRequest struct {
	TableNumber *int           `json:"table_number"`
	Status      *string        `json:"status"`
	Items       *[]ItemRequest `json:"items"`

	kind   OperationKind
	status *domain.OrderStatus
	items  []orderdto.ItemInput
}

// DecodeOrderWrite reads and validates a write payload for kind. Validation
// problems come back as *domain.ValidationError.
func DecodeOrderWrite(body io.Reader, kind OperationKind) (*OrderWriteRequest, error) {
	var req OrderWriteRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return nil, decodeError(err)
	}
	req.kind = kind

	if err := req.validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

func decodeError(err error) error {
	verr := domain.NewValidationError()

	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr) && typeErr.Field != "":
		verr.Add(typeErr.Field, fmt.Sprintf("Incorrect type. Expected %s, received %s.", typeErr.Type, typeErr.Value))
	case errors.Is(err, io.EOF):
		verr.Add("non_field_errors", "Request body is empty.")
	default:
		verr.Add("non_field_errors", "JSON parse error - "+err.Error())
	}
	return verr
}

func (r *OrderWriteRequest) validate() error {
	verr := domain.NewValidationError()

	if r.TableNumber == nil {
		if r.kind != OpPartialUpdate {
			verr.Add("table_number", "This field is required.")
		}
	} else if err := ValidateTableNumber(*r.TableNumber); err != nil {
		verr.Add("table_number", err.Error())
	}

	if r.Status != nil {
		status, err := domain.ParseOrderStatus(*r.Status)
		if err != nil {
			verr.Add("status", err.Error()+".")
		} else {
			r.status = &status
		}
	}

	if r.Items != nil {
		r.items = make([]orderdto.ItemInput, 0, len(*r.Items))
		for i, item := range *r.Items {
			prefix := fmt.Sprintf("items[%d].", i)
			input := orderdto.ItemInput{ID: item.ID}

			if item.ID != nil && *item.ID == 0 {
				verr.Add(prefix+"id", "A valid positive integer is required.")
			}

			if item.Item == nil {
				verr.Add(prefix+"item", "This field is required.")
			} else if err := ValidateItemName(*item.Item); err != nil {
				verr.Add(prefix+"item", err.Error())
			} else {
				input.Name = *item.Item
			}

			price, err := parseJSONPrice(item.Price)
			if err != nil {
				verr.Add(prefix+"price", err.Error())
			}
			input.Price = price

			r.items = append(r.items, input)
		}
	}

	return verr.OrNil()
}

func (r *OrderWriteRequest) Kind() OperationKind {
	return r.kind
}

func (r *OrderWriteRequest) ToCreateInput() *orderdto.CreateOrderInput {
	input := &orderdto.CreateOrderInput{
		TableNumber: *r.TableNumber,
		Status:      domain.StatusPending,
		Items:       r.items,
	}
	if r.status != nil {
		input.Status = *r.status
	}
	if input.Items == nil {
		input.Items = []orderdto.ItemInput{}
	}
	return input
}

// ToUpdateInput keeps absent fields unchanged. A present items list, even an
// empty one, replaces the order's item set.
func (r *OrderWriteRequest) ToUpdateInput() *orderdto.UpdateOrderInput {
	return &orderdto.UpdateOrderInput{
		TableNumber: r.TableNumber,
		Status:      r.status,
		SyncItems:   r.Items != nil,
		Items:       r.items,
	}
}

// parseJSONPrice accepts both 5.5 and "5.50".
func parseJSONPrice(raw json.RawMessage) (decimal.Decimal, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return decimal.Zero, errors.New("This field is required.")
	}
	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return decimal.Zero, errors.New("A valid number is required.")
		}
	}
	return ParsePrice(text)
}
