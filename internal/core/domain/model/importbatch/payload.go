package importbatch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"vendorportal/internal/core/domain/model/kernel"
	"vendorportal/internal/core/domain/model/order"
	"vendorportal/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// recordsKey is the top-level property holding the records. It is matched
// ignoring case, like every other property of the payload.
const recordsKey = "orders"

// OrderRecord is one decoded import record: the input of a CreateOrder.
type OrderRecord struct {
	CustomerID kernel.UUID
	SupplierID kernel.UUID
	Type       order.Type
	Lines      []LineRecord
}

// LineRecord is one line of an OrderRecord.
type LineRecord struct {
	MaterialID kernel.UUID
	Quantity   decimal.Decimal
	Price      decimal.Decimal
}

// wire shapes; encoding/json matches their field names case-insensitively.
type orderJSON struct {
	CustomerID string     `json:"customerId"`
	SupplierID string     `json:"supplierId"`
	OrderType  string     `json:"orderType"`
	Lines      []lineJSON `json:"lines"`
}

type lineJSON struct {
	MaterialID string           `json:"materialId"`
	Quantity   *decimal.Decimal `json:"quantity"`
	Price      *decimal.Decimal `json:"price"`
}

// SplitPayload checks the payload as a whole and returns its records
// undecoded. Anything other than a JSON object with a non-empty records
// array is a MalformedPayloadError; individual records are decoded later so
// one bad record cannot fail its siblings.
func SplitPayload(raw []byte) ([]json.RawMessage, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, errs.NewMalformedPayloadError("payload is empty")
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, errs.NewMalformedPayloadErrorWithCause("payload is not a JSON object", err)
	}

	var (
		field json.RawMessage
		found bool
	)
	for k, v := range top {
		if strings.EqualFold(k, recordsKey) {
			if found {
				return nil, errs.NewMalformedPayloadError(fmt.Sprintf("%q appears more than once", recordsKey))
			}
			field, found = v, true
		}
	}
	if !found {
		return nil, errs.NewMalformedPayloadError(fmt.Sprintf("%q array is missing", recordsKey))
	}

	var records []json.RawMessage
	if err := json.Unmarshal(field, &records); err != nil {
		return nil, errs.NewMalformedPayloadErrorWithCause(fmt.Sprintf("%q is not an array", recordsKey), err)
	}
	if len(records) == 0 {
		return nil, errs.NewMalformedPayloadError(fmt.Sprintf("%q array is empty", recordsKey))
	}

	return records, nil
}

// DecodeRecord turns one raw record into an OrderRecord. Every problem is
// a validation error and all of them are reported together.
func DecodeRecord(raw json.RawMessage) (OrderRecord, error) {
	var in orderJSON
	if err := json.Unmarshal(raw, &in); err != nil {
		return OrderRecord{}, errs.NewValueIsInvalidErrorWithCause("record", err)
	}

	var rec OrderRecord
	var problems []error

	var err error
	if rec.CustomerID, err = parseID("customerId", in.CustomerID); err != nil {
		problems = append(problems, err)
	}
	if rec.SupplierID, err = parseID("supplierId", in.SupplierID); err != nil {
		problems = append(problems, err)
	}
	if strings.TrimSpace(in.OrderType) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("orderType"))
	} else if rec.Type, err = order.TypeFromString(strings.TrimSpace(in.OrderType)); err != nil {
		problems = append(problems, err)
	}

	if len(in.Lines) == 0 {
		problems = append(problems, errs.NewValueIsRequiredError("lines"))
	}
	for i, l := range in.Lines {
		line, lineErr := decodeLine(i, l)
		if lineErr != nil {
			problems = append(problems, lineErr)
			continue
		}
		rec.Lines = append(rec.Lines, line)
	}

	if err = errors.Join(problems...); err != nil {
		return OrderRecord{}, err
	}
	return rec, nil
}

func decodeLine(i int, l lineJSON) (LineRecord, error) {
	var problems []error

	materialID, err := parseID(fmt.Sprintf("lines[%d].materialId", i), l.MaterialID)
	if err != nil {
		problems = append(problems, err)
	}
	if l.Quantity == nil {
		problems = append(problems, errs.NewValueIsRequiredError(fmt.Sprintf("lines[%d].quantity", i)))
	}
	if l.Price == nil {
		problems = append(problems, errs.NewValueIsRequiredError(fmt.Sprintf("lines[%d].price", i)))
	}
	if err = errors.Join(problems...); err != nil {
		return LineRecord{}, err
	}

	return LineRecord{MaterialID: materialID, Quantity: *l.Quantity, Price: *l.Price}, nil
}

func parseID(param, s string) (kernel.UUID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError(param)
	}
	id, err := kernel.UUIDFromString(s)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	if err = id.Validate(); err != nil {
		return kernel.UUID{}, errs.NewValueIsRequiredErrorWithCause(param, err)
	}
	return id, nil
}
