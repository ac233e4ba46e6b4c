package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderTransitions(t *testing.T) {
	cases := []struct {
		from, to string
		allowed  bool
	}{
		{OrderPlaced, OrderPreparing, true},
		{OrderPlaced, OrderCancelled, true},
		{OrderPlaced, OrderOutForDelivery, false},
		{OrderPlaced, OrderDelivered, false},
		{OrderPreparing, OrderOutForDelivery, true},
		{OrderPreparing, OrderCancelled, true},
		{OrderPreparing, OrderDelivered, false},
		{OrderOutForDelivery, OrderDelivered, true},
		{OrderOutForDelivery, OrderCancelled, true},
		{OrderOutForDelivery, OrderPlaced, false},
		{OrderDelivered, OrderCancelled, false},
		{OrderCancelled, OrderPlaced, false},
		{OrderDelivered, OrderPlaced, false},
	}

	for _, tc := range cases {
		assert.Equalf(t, tc.allowed, CanTransitionOrder(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []string{OrderPlaced, OrderPreparing, OrderOutForDelivery, OrderDelivered, OrderCancelled} {
		assert.True(t, ValidOrderStatus(s))
	}
	assert.False(t, ValidOrderStatus("shipped"))
	assert.False(t, ValidOrderStatus(""))
}

func TestAssignmentTransitions(t *testing.T) {
	assert.True(t, CanTransitionAssignment(AssignmentAssigned, AssignmentPickedUp))
	assert.True(t, CanTransitionAssignment(AssignmentPickedUp, AssignmentDelivered))
	assert.False(t, CanTransitionAssignment(AssignmentAssigned, AssignmentDelivered))
	assert.False(t, CanTransitionAssignment(AssignmentDelivered, AssignmentPickedUp))
	assert.False(t, CanTransitionAssignment(AssignmentDelivered, AssignmentDelivered))
}

func TestValidPaymentMethod(t *testing.T) {
	assert.True(t, ValidPaymentMethod(PaymentMethodCOD))
	assert.True(t, ValidPaymentMethod(PaymentMethodOnline))
	assert.True(t, ValidPaymentMethod(PaymentMethodUPI))
	assert.False(t, ValidPaymentMethod("card"))
	assert.False(t, ValidPaymentMethod(""))
}

func TestValidVehicleType(t *testing.T) {
	assert.True(t, ValidVehicleType("bike"))
	assert.True(t, ValidVehicleType("scooter"))
	assert.True(t, ValidVehicleType("car"))
	assert.False(t, ValidVehicleType("truck"))
}

func TestGenerateOrderNumberShape(t *testing.T) {
	n := GenerateOrderNumber()
	assert.True(t, strings.HasPrefix(n, "ORD"))
	assert.Len(t, n, 14) // ORD + 8 timestamp digits + 3 random digits
}
