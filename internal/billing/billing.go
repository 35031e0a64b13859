// Package billing holds the pure money computations: table settlement totals,
// room checkout pricing and the GST invoice. All arithmetic runs on decimals and
// is converted back to float64 currency units only at the boundary.
package billing

import (
	"fmt"
	"time"

	"hotel_pos_backend/internal/models"

	"github.com/shopspring/decimal"
)

// GSTRatePercent is the rate applied separately as CGST and as SGST (5% total).
const GSTRatePercent = 2.5

const day = 24 * time.Hour

var (
	gstRate    = decimal.NewFromFloat(GSTRatePercent)
	oneHundred = decimal.NewFromInt(100)
)

func lineTotal(price float64, quantity int) decimal.Decimal {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(quantity)))
}

// OrderItemsTotal sums price*quantity over every non-VOID order line.
func OrderItemsTotal(items []models.OrderItem) float64 {
	total := decimal.Zero
	for _, item := range items {
		if item.Status == models.OrderStatusVoid {
			continue
		}
		total = total.Add(lineTotal(item.Price, item.Quantity))
	}
	return total.InexactFloat64()
}

// ServiceItemsTotal sums price*quantity over room service items.
func ServiceItemsTotal(items []models.RoomServiceItem) float64 {
	return serviceItemsTotal(items, "").InexactFloat64()
}

func serviceItemsTotal(items []models.RoomServiceItem, only models.ServiceCategory) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		if only != "" && item.Category != only {
			continue
		}
		total = total.Add(lineTotal(item.Price, item.Quantity))
	}
	return total
}

// Nights counts started 24h periods between check-in and check-out, never less than one.
func Nights(checkIn, checkOut time.Time) int {
	elapsed := checkOut.Sub(checkIn)
	if elapsed <= 0 {
		return 1
	}
	n := int(elapsed / day)
	if elapsed%day != 0 {
		n++
	}
	if n < 1 {
		return 1
	}
	return n
}

// SellingRate is the nightly rate charged at checkout: the booking's selling
// override when set, else the room rate for the booking's AC choice.
func SellingRate(booking *models.RoomBooking, room *models.Room) float64 {
	if booking.PricePerNightSelling != nil {
		return *booking.PricePerNightSelling
	}
	return room.NightlyRate(booking.IsAC)
}

// BilledRate is the nightly rate printed on the invoice. It may differ from the
// selling rate when the guest asked for a different billed amount.
func BilledRate(booking *models.RoomBooking, room *models.Room) float64 {
	if booking.PricePerNightBilled != nil {
		return *booking.PricePerNightBilled
	}
	return SellingRate(booking, room)
}

// ExtraBeddingCharge is the per-night extra bedding charge, zero when bedding is
// included in the rate.
func ExtraBeddingCharge(booking *models.RoomBooking) float64 {
	if booking.ExtraBeddingIncluded || booking.ExtraBeddingChargePerNight == nil {
		return 0
	}
	return *booking.ExtraBeddingChargePerNight
}

// CheckoutTotals is the breakdown persisted when a stay is checked out.
type CheckoutTotals struct {
	Nights      int     `json:"nights"`
	BaseRate    float64 `json:"baseRate"`
	ExtraCharge float64 `json:"extraCharge"`
	RoomTotal   float64 `json:"roomTotal"`
	ItemsTotal  float64 `json:"itemsTotal"`
	TotalAmount float64 `json:"totalAmount"`
}

// RoomCheckout prices a stay ending at checkOut. GST is not included; it is
// applied on top by the invoice.
func RoomCheckout(booking *models.RoomBooking, room *models.Room, items []models.RoomServiceItem, checkOut time.Time) CheckoutTotals {
	nights := Nights(booking.CheckIn, checkOut)
	base := SellingRate(booking, room)
	extra := ExtraBeddingCharge(booking)

	roomTotal := decimal.NewFromFloat(base).Add(decimal.NewFromFloat(extra)).Mul(decimal.NewFromInt(int64(nights)))
	itemsTotal := serviceItemsTotal(items, "")

	return CheckoutTotals{
		Nights:      nights,
		BaseRate:    base,
		ExtraCharge: extra,
		RoomTotal:   roomTotal.InexactFloat64(),
		ItemsTotal:  itemsTotal.InexactFloat64(),
		TotalAmount: roomTotal.Add(itemsTotal).InexactFloat64(),
	}
}

// Line categories used on invoices besides the service categories.
const (
	LineCategoryRoom         = "ROOM"
	LineCategoryExtraBedding = "EXTRA_BEDDING"
)

// LineItem is one printed invoice row.
type LineItem struct {
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Quantity    int      `json:"quantity"`
	UnitPrice   float64  `json:"unitPrice"`
	MRP         *float64 `json:"mrp,omitempty"`
	Total       float64  `json:"total"`
}

// InvoiceInput is everything the invoice depends on. InvoiceNo is allocated by
// the caller and only echoed back. AsOf stands in for the checkout time of a
// stay that is still open.
type InvoiceInput struct {
	Booking    *models.RoomBooking
	Room       *models.Room
	Items      []models.RoomServiceItem
	GSTEnabled bool
	InvoiceNo  int64
	AsOf       time.Time
}

// Invoice is the computed GST bill.
type Invoice struct {
	InvoiceNo     int64      `json:"invoiceNo"`
	BookingID     int64      `json:"bookingId"`
	RoomNumber    string     `json:"roomNumber"`
	GuestName     string     `json:"guestName"`
	CheckIn       time.Time  `json:"checkIn"`
	CheckOut      time.Time  `json:"checkOut"`
	Nights        int        `json:"nights"`
	GSTEnabled    bool       `json:"gstEnabled"`
	GSTRate       float64    `json:"gstRate"`
	LineItems     []LineItem `json:"lineItems"`
	Subtotal      float64    `json:"subtotal"`
	AmenityTotal  float64    `json:"amenityTotal"`
	TaxableAmount float64    `json:"taxableAmount"`
	CGST          float64    `json:"cgst"`
	SGST          float64    `json:"sgst"`
	RoundOff      float64    `json:"roundOff"`
	GrandTotal    float64    `json:"grandTotal"`

	Customer models.BillingDetails `json:"customer"`
}

// ComputeInvoice builds the invoice. Amenity lines are GST-inclusive retail
// prices and are excluded from the taxable amount; room, bedding and food are taxed.
func ComputeInvoice(in InvoiceInput) Invoice {
	booking, room := in.Booking, in.Room

	checkOut := in.AsOf
	if booking.CheckOut != nil {
		checkOut = *booking.CheckOut
	}
	nights := Nights(booking.CheckIn, checkOut)

	acLabel := "Non-AC"
	if booking.IsAC {
		acLabel = "AC"
	}
	nightLabel := "Nights"
	if nights == 1 {
		nightLabel = "Night"
	}

	rate := BilledRate(booking, room)
	lines := []LineItem{{
		Description: fmt.Sprintf("Room %s - %s (%d %s)", room.RoomNumber, acLabel, nights, nightLabel),
		Category:    LineCategoryRoom,
		Quantity:    nights,
		UnitPrice:   rate,
		MRP:         booking.PricePerNightMRP,
		Total:       lineTotal(rate, nights).InexactFloat64(),
	}}
	subtotal := lineTotal(rate, nights)

	if extra := ExtraBeddingCharge(booking); extra > 0 {
		lines = append(lines, LineItem{
			Description: "Extra Bedding",
			Category:    LineCategoryExtraBedding,
			Quantity:    nights,
			UnitPrice:   extra,
			Total:       lineTotal(extra, nights).InexactFloat64(),
		})
		subtotal = subtotal.Add(lineTotal(extra, nights))
	}

	for _, item := range in.Items {
		desc := item.Name
		if item.Category == models.ServiceCategoryAmenity {
			desc += " (Amenity)"
		}
		total := lineTotal(item.Price, item.Quantity)
		lines = append(lines, LineItem{
			Description: desc,
			Category:    string(item.Category),
			Quantity:    item.Quantity,
			UnitPrice:   item.Price,
			Total:       total.InexactFloat64(),
		})
		subtotal = subtotal.Add(total)
	}

	amenityTotal := serviceItemsTotal(in.Items, models.ServiceCategoryAmenity)
	taxable := subtotal.Sub(amenityTotal)

	cgst, sgst := decimal.Zero, decimal.Zero
	grandTotal := subtotal
	roundOff := decimal.Zero
	rateApplied := 0.0
	if in.GSTEnabled {
		cgst = taxable.Mul(gstRate).Round(0).Div(oneHundred)
		sgst = cgst
		gross := subtotal.Add(cgst).Add(sgst)
		grandTotal = gross.Round(0)
		roundOff = grandTotal.Sub(gross)
		rateApplied = GSTRatePercent
	}

	return Invoice{
		InvoiceNo:      in.InvoiceNo,
		BookingID:      booking.ID,
		RoomNumber:     room.RoomNumber,
		GuestName:      booking.GuestName,
		CheckIn:        booking.CheckIn,
		CheckOut:       checkOut,
		Nights:         nights,
		GSTEnabled:     in.GSTEnabled,
		GSTRate:        rateApplied,
		LineItems:      lines,
		Subtotal:       subtotal.InexactFloat64(),
		AmenityTotal:   amenityTotal.InexactFloat64(),
		TaxableAmount:  taxable.InexactFloat64(),
		CGST:           cgst.InexactFloat64(),
		SGST:           sgst.InexactFloat64(),
		RoundOff:       roundOff.InexactFloat64(),
		GrandTotal:     grandTotal.InexactFloat64(),
		Customer:       booking.BillingDetails,
	}
}
