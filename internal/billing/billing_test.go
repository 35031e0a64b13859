package billing

import (
	"testing"
	"time"

	"hotel_pos_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func scenarioRoom() *models.Room {
	return &models.Room{ID: 7, RoomNumber: "101", PriceNonAC: 1200, PriceAC: 1500}
}

func scenarioItems() []models.RoomServiceItem {
	return []models.RoomServiceItem{
		{Name: "Thali", Category: models.ServiceCategoryFood, Price: 200, Quantity: 1},
		{Name: "Water Bottle", Category: models.ServiceCategoryAmenity, Price: 40, Quantity: 2},
	}
}

func TestNights(t *testing.T) {
	checkIn := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	cases := []struct {
		name  string
		after time.Duration
		want  int
	}{
		{"same instant", 0, 1},
		{"three hours", 3 * time.Hour, 1},
		{"exactly one day", 24 * time.Hour, 1},
		{"twenty five hours", 25 * time.Hour, 2},
		{"exactly two days", 48 * time.Hour, 2},
		{"clock skew", -time.Hour, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Nights(checkIn, checkIn.Add(tc.after)))
		})
	}
}

func TestOrderItemsTotal_SkipsVoid(t *testing.T) {
	items := []models.OrderItem{
		{Name: "Butter Chicken", Price: 18, Quantity: 2, Status: models.OrderStatusServed},
		{Name: "Naan", Price: 4.5, Quantity: 3, Status: models.OrderStatusServed},
		{Name: "Extra Rice", Price: 3, Quantity: 1, Status: models.OrderStatusVoid},
	}
	assert.Equal(t, 49.5, OrderItemsTotal(items))
	assert.Equal(t, 0.0, OrderItemsTotal(nil))
}

func TestRoomCheckout_Scenario(t *testing.T) {
	checkIn := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	booking := &models.RoomBooking{IsAC: true, CheckIn: checkIn}

	totals := RoomCheckout(booking, scenarioRoom(), scenarioItems(), checkIn.Add(48*time.Hour))

	assert.Equal(t, 2, totals.Nights)
	assert.Equal(t, 1500.0, totals.BaseRate)
	assert.Equal(t, 3000.0, totals.RoomTotal)
	assert.Equal(t, 280.0, totals.ItemsTotal)
	assert.Equal(t, 3280.0, totals.TotalAmount)
}

func TestRoomCheckout_SellingOverrideAndExtraBedding(t *testing.T) {
	checkIn := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	booking := &models.RoomBooking{
		CheckIn:                    checkIn,
		PricePerNightSelling:       floatPtr(1000),
		ExtraBeddingChargePerNight: floatPtr(300),
	}

	totals := RoomCheckout(booking, scenarioRoom(), nil, checkIn.Add(3*time.Hour))
	assert.Equal(t, 1, totals.Nights)
	assert.Equal(t, 1300.0, totals.RoomTotal)

	booking.ExtraBeddingIncluded = true
	totals = RoomCheckout(booking, scenarioRoom(), nil, checkIn.Add(3*time.Hour))
	assert.Equal(t, 0.0, totals.ExtraCharge)
	assert.Equal(t, 1000.0, totals.TotalAmount)
}

func TestComputeInvoice_ScenarioWithGST(t *testing.T) {
	checkIn := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	checkOut := checkIn.Add(48 * time.Hour)
	booking := &models.RoomBooking{ID: 3, IsAC: true, CheckIn: checkIn, CheckOut: &checkOut, GuestName: "Ravi"}

	inv := ComputeInvoice(InvoiceInput{
		Booking: booking, Room: scenarioRoom(), Items: scenarioItems(), GSTEnabled: true, InvoiceNo: 42,
	})

	require.Len(t, inv.LineItems, 3)
	assert.Equal(t, "Room 101 - AC (2 Nights)", inv.LineItems[0].Description)
	assert.Equal(t, "Water Bottle (Amenity)", inv.LineItems[2].Description)
	assert.Equal(t, int64(42), inv.InvoiceNo)
	assert.Equal(t, 3280.0, inv.Subtotal)
	assert.Equal(t, 80.0, inv.AmenityTotal)
	assert.Equal(t, 3200.0, inv.TaxableAmount)
	assert.Equal(t, 80.0, inv.CGST)
	assert.Equal(t, 80.0, inv.SGST)
	assert.Equal(t, 3360.0, inv.GrandTotal)
	assert.Equal(t, 0.0, inv.RoundOff)
}

func TestComputeInvoice_Idempotent(t *testing.T) {
	checkIn := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	booking := &models.RoomBooking{CheckIn: checkIn, PricePerNightSelling: floatPtr(1333.33)}
	in := InvoiceInput{Booking: booking, Room: scenarioRoom(), Items: scenarioItems(), GSTEnabled: true, InvoiceNo: 9, AsOf: checkIn.Add(30 * time.Hour)}

	first := ComputeInvoice(in)
	second := ComputeInvoice(in)
	assert.Equal(t, first.GrandTotal, second.GrandTotal)
	assert.Equal(t, first, second)
}

func TestComputeInvoice_RoundOff(t *testing.T) {
	checkIn := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	booking := &models.RoomBooking{CheckIn: checkIn, PricePerNightSelling: floatPtr(999)}

	inv := ComputeInvoice(InvoiceInput{Booking: booking, Room: scenarioRoom(), GSTEnabled: true, AsOf: checkIn.Add(time.Hour)})

	// 999 * 2.5 = 2497.5 -> 2498 -> 24.98 each
	assert.Equal(t, 24.98, inv.CGST)
	assert.Equal(t, 24.98, inv.SGST)
	assert.Equal(t, 1049.0, inv.GrandTotal)
	assert.InDelta(t, 0.04, inv.RoundOff, 1e-9)
}

func TestComputeInvoice_GSTDisabled(t *testing.T) {
	checkIn := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	booking := &models.RoomBooking{CheckIn: checkIn, PricePerNightSelling: floatPtr(999.5)}

	inv := ComputeInvoice(InvoiceInput{Booking: booking, Room: scenarioRoom(), Items: scenarioItems(), AsOf: checkIn.Add(time.Hour)})

	assert.Equal(t, 0.0, inv.CGST)
	assert.Equal(t, 0.0, inv.SGST)
	assert.Equal(t, 0.0, inv.GSTRate)
	assert.Equal(t, inv.Subtotal, inv.GrandTotal)
	assert.Equal(t, 1279.5, inv.GrandTotal)
	assert.Equal(t, 0.0, inv.RoundOff)
}

func TestComputeInvoice_BilledRateAndBedding(t *testing.T) {
	checkIn := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	booking := &models.RoomBooking{
		CheckIn:                    checkIn,
		PricePerNightMRP:           floatPtr(2500),
		PricePerNightSelling:       floatPtr(1800),
		PricePerNightBilled:        floatPtr(2000),
		ExtraBeddingChargePerNight: floatPtr(400),
	}

	inv := ComputeInvoice(InvoiceInput{Booking: booking, Room: scenarioRoom(), AsOf: checkIn.Add(time.Hour)})

	require.Len(t, inv.LineItems, 2)
	assert.Equal(t, 2000.0, inv.LineItems[0].UnitPrice)
	assert.Equal(t, 2500.0, *inv.LineItems[0].MRP)
	assert.Equal(t, LineCategoryExtraBedding, inv.LineItems[1].Category)
	assert.Equal(t, 2400.0, inv.Subtotal)
	assert.Equal(t, "Room 101 - Non-AC (1 Night)", inv.LineItems[0].Description)
}
