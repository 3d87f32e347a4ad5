package services

import (
	"encoding/json"
	"strings"

	"pos_reporting_backend/internal/models"

	"github.com/shopspring/decimal"
)

// DefaultPaymentMethod is assigned when an order carries no payment method.
const DefaultPaymentMethod = "cash"

// Payment is the parsed form of an order's raw paymentMethod field: either
// a single method name or a multi-method split. Parsing happens once here
// instead of ad hoc at every use site.
type Payment struct {
	// Method is set for a single-method payment; empty when split.
	Method string
	// Parts holds the split entries; nil for a single-method payment.
	Parts []models.PaymentPart
}

// IsSplit reports whether the payment was decomposed from a JSON split.
func (p Payment) IsSplit() bool {
	return len(p.Parts) > 0
}

// ParsePayment interprets the raw paymentMethod field. A JSON-encoded
// non-empty array of {method, amount} entries becomes a split; anything
// else is taken verbatim as a single method name, defaulting to cash when
// the field is blank.
func ParsePayment(raw string) Payment {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Payment{Method: DefaultPaymentMethod}
	}

	var parts []models.PaymentPart
	if err := json.Unmarshal([]byte(trimmed), &parts); err == nil && len(parts) > 0 {
		for i := range parts {
			if strings.TrimSpace(parts[i].Method) == "" {
				parts[i].Method = DefaultPaymentMethod
			}
		}
		return Payment{Parts: parts}
	}

	return Payment{Method: trimmed}
}

// DecomposePayments maps payment method to amount for one order. Split
// amounts are used as stored, not rescaled; a single-method payment is
// assigned the full customer-paid amount, so the mapping always sums to
// customerPaid within one minor currency unit.
func DecomposePayments(order models.Order, derived models.DerivedOrderFinancials) map[string]decimal.Decimal {
	payment := ParsePayment(order.PaymentMethod)
	totals := make(map[string]decimal.Decimal)

	if payment.IsSplit() {
		for _, part := range payment.Parts {
			totals[part.Method] = totals[part.Method].Add(part.Amount)
		}
		return totals
	}

	totals[payment.Method] = derived.CustomerPaid
	return totals
}
