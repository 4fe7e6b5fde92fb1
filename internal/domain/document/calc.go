package document

import (
	"github.com/findoc/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DiscountType represents how a discount value is interpreted
type DiscountType string

const (
	DiscountPercent DiscountType = "PERCENT"
	DiscountAmount  DiscountType = "AMOUNT"
)

// IsValid checks if the discount type is valid
func (d DiscountType) IsValid() bool {
	return d == DiscountPercent || d == DiscountAmount
}

// String returns the string representation of DiscountType
func (d DiscountType) String() string {
	return string(d)
}

// discountOf computes the discount amount for a base amount, clamped to
// [0, base] so a discount can never invert the sign of the result. Percent
// discounts are taken against the pre-discount base, never a running total.
func (d DiscountType) discountOf(base, value decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	switch d {
	case DiscountPercent:
		discount = base.Mul(value).Div(decimal.NewFromInt(100))
	case DiscountAmount:
		discount = value
	default:
		return decimal.Zero
	}
	if discount.IsNegative() {
		return decimal.Zero
	}
	if discount.GreaterThan(base) {
		return base
	}
	return discount
}

// ComputeLineSubtotal converts one line's raw inputs into its subtotal:
// max(0, quantity x unitPrice - discount). Structurally invalid input
// (non-positive quantity, negative price or discount, unknown discount type)
// returns a field-attributable validation error; a discount exceeding the
// line amount is business-recoverable and clamps to zero instead.
func ComputeLineSubtotal(quantity, unitPrice decimal.Decimal, discountType DiscountType, discountValue decimal.Decimal) (decimal.Decimal, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, shared.NewValidationError("quantity", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return decimal.Zero, shared.NewValidationError("unit_price", "Unit price cannot be negative")
	}
	if !discountType.IsValid() {
		return decimal.Zero, shared.NewValidationError("discount_type", "Discount type must be PERCENT or AMOUNT")
	}
	if discountValue.IsNegative() {
		return decimal.Zero, shared.NewValidationError("discount_value", "Discount value cannot be negative")
	}

	gross := quantity.Mul(unitPrice)
	return gross.Sub(discountType.discountOf(gross, discountValue)), nil
}

// Totals holds the derived monetary fields of a document. Never stored
// independently of recomputation: every aggregate mutation rebuilds it.
type Totals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	OtherCharges   decimal.Decimal `json:"other_charges"`
	TaxTotal       decimal.Decimal `json:"tax_total"`
	TaxInclusive   bool            `json:"tax_inclusive"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
}

// Rounded returns totals rounded half-up to two decimal places. Rounding
// happens only here, at the persistence/serialization boundary, never in
// intermediate arithmetic.
func (t Totals) Rounded() Totals {
	return Totals{
		Subtotal:       t.Subtotal.Round(2),
		DiscountAmount: t.DiscountAmount.Round(2),
		OtherCharges:   t.OtherCharges.Round(2),
		TaxTotal:       t.TaxTotal.Round(2),
		TaxInclusive:   t.TaxInclusive,
		GrandTotal:     t.GrandTotal.Round(2),
	}
}

// Equal reports whether two totals are numerically identical
func (t Totals) Equal(other Totals) bool {
	return t.Subtotal.Equal(other.Subtotal) &&
		t.DiscountAmount.Equal(other.DiscountAmount) &&
		t.OtherCharges.Equal(other.OtherCharges) &&
		t.TaxTotal.Equal(other.TaxTotal) &&
		t.TaxInclusive == other.TaxInclusive &&
		t.GrandTotal.Equal(other.GrandTotal)
}

// ComputeTotals derives document totals from its lines and header fields:
// subtotal is the sum of line subtotals, the header discount applies the
// same percent/amount rule against the subtotal, and
// grandTotal = max(0, subtotal - discount) + otherCharges + tax (tax added
// only when not inclusive; inclusive tax is informational, already embedded
// in unit prices). Pure and IO-free.
func ComputeTotals(lines []LineItem, discountType DiscountType, discountValue, otherCharges, taxTotal decimal.Decimal, taxInclusive bool) (Totals, error) {
	if !discountType.IsValid() {
		return Totals{}, shared.NewValidationError("discount_type", "Discount type must be PERCENT or AMOUNT")
	}
	if discountValue.IsNegative() {
		return Totals{}, shared.NewValidationError("discount_value", "Discount value cannot be negative")
	}
	if otherCharges.IsNegative() {
		return Totals{}, shared.NewValidationError("other_charges", "Other charges cannot be negative")
	}
	if taxTotal.IsNegative() {
		return Totals{}, shared.NewValidationError("tax_total", "Tax total cannot be negative")
	}

	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Subtotal)
	}

	discount := discountType.discountOf(subtotal, discountValue)
	net := subtotal.Sub(discount)
	if net.IsNegative() {
		net = decimal.Zero
	}

	grand := net.Add(otherCharges)
	if !taxInclusive {
		grand = grand.Add(taxTotal)
	}

	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		OtherCharges:   otherCharges,
		TaxTotal:       taxTotal,
		TaxInclusive:   taxInclusive,
		GrandTotal:     grand,
	}, nil
}
