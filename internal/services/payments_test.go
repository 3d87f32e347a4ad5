package services

import (
	"testing"

	"pos_reporting_backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePaymentSingleMethod(t *testing.T) {
	payment := ParsePayment("card")
	assert.False(t, payment.IsSplit())
	assert.Equal(t, "card", payment.Method)
}

func TestParsePaymentDefaultsToCash(t *testing.T) {
	assert.Equal(t, DefaultPaymentMethod, ParsePayment("").Method)
	assert.Equal(t, DefaultPaymentMethod, ParsePayment("   ").Method)
}

func TestParsePaymentSplit(t *testing.T) {
	payment := ParsePayment(`[{"method":"cash","amount":60000},{"method":"card","amount":38000}]`)
	require.True(t, payment.IsSplit())
	require.Len(t, payment.Parts, 2)
	assert.Equal(t, "cash", payment.Parts[0].Method)
	assert.True(t, payment.Parts[0].Amount.Equal(amount(60000)))
}

func TestParsePaymentMalformedJSONFallsBack(t *testing.T) {
	// not valid JSON: treated verbatim as a method name
	payment := ParsePayment(`[{"method":`)
	assert.False(t, payment.IsSplit())
	assert.Equal(t, `[{"method":`, payment.Method)
}

func TestParsePaymentUnknownMethodPassthrough(t *testing.T) {
	payment := ParsePayment("crypto-voucher")
	assert.Equal(t, "crypto-voucher", payment.Method)
}

func TestDecomposePaymentsSplit(t *testing.T) {
	order := taxExclusiveOrder()
	order.PaymentMethod = `[{"method":"cash","amount":60000},{"method":"card","amount":38000}]`
	derived := DeriveFinancials(order)

	totals := DecomposePayments(order, derived)
	require.Len(t, totals, 2)
	assert.True(t, totals["cash"].Equal(amount(60000)))
	assert.True(t, totals["card"].Equal(amount(38000)))

	sum := decimal.Zero
	for _, v := range totals {
		sum = sum.Add(v)
	}
	tolerance := decimal.NewFromInt(1)
	assert.True(t, sum.Sub(derived.CustomerPaid).Abs().LessThanOrEqual(tolerance),
		"split must sum to customerPaid, got %s vs %s", sum, derived.CustomerPaid)
}

func TestDecomposePaymentsSingleGetsFullAmount(t *testing.T) {
	order := taxExclusiveOrder()
	order.PaymentMethod = "e-wallet"
	derived := DeriveFinancials(order)

	totals := DecomposePayments(order, derived)
	require.Len(t, totals, 1)
	assert.True(t, totals["e-wallet"].Equal(derived.CustomerPaid))
}

func TestDecomposePaymentsEmptyFieldDefaultsToCash(t *testing.T) {
	order := taxExclusiveOrder()
	order.PaymentMethod = ""
	derived := DeriveFinancials(order)

	totals := DecomposePayments(order, derived)
	require.Len(t, totals, 1)
	assert.True(t, totals[DefaultPaymentMethod].Equal(derived.CustomerPaid))
}

func TestDecomposePaymentsMergesDuplicateMethods(t *testing.T) {
	order := models.Order{
		PaymentMethod: `[{"method":"cash","amount":1000},{"method":"cash","amount":500}]`,
	}
	totals := DecomposePayments(order, DeriveFinancials(order))
	require.Len(t, totals, 1)
	assert.True(t, totals["cash"].Equal(amount(1500)))
}
