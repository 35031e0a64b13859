package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	all := []OrderStatus{OrderStatusOrdering, OrderStatusPreparing, OrderStatusReady, OrderStatusServed, OrderStatusVoid}
	allowed := map[OrderStatus]map[OrderStatus]bool{
		OrderStatusOrdering:  {OrderStatusPreparing: true, OrderStatusVoid: true},
		OrderStatusPreparing: {OrderStatusReady: true, OrderStatusVoid: true},
		OrderStatusReady:     {OrderStatusServed: true, OrderStatusVoid: true},
	}

	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, allowed[from][to], from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestOrderStatus_KitchenTouched(t *testing.T) {
	assert.False(t, OrderStatusOrdering.KitchenTouched())
	assert.True(t, OrderStatusPreparing.KitchenTouched())
	assert.True(t, OrderStatusReady.KitchenTouched())
	assert.True(t, OrderStatusServed.KitchenTouched())
	assert.False(t, OrderStatusVoid.KitchenTouched())
}

func TestTable_Reset(t *testing.T) {
	guests := 3
	table := Table{Status: TableStatusNeedsBill, Guests: &guests, CurrentOrders: []OrderItem{{ID: 1}}}
	table.Reset()

	assert.Equal(t, TableStatusEmpty, table.Status)
	assert.Nil(t, table.Guests)
	assert.Nil(t, table.StartTime)
	assert.Empty(t, table.CurrentOrders)
}

func TestIsValidRole(t *testing.T) {
	for _, r := range AllRoles {
		assert.True(t, IsValidRole(string(r)))
	}
	assert.False(t, IsValidRole("owner"))
	assert.False(t, IsValidRole(""))
}
