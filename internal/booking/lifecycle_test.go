package booking

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTransitions(t *testing.T) {
	allStatuses := []Status{
		StatusPending, StatusConfirmed, StatusActive,
		StatusCompleted, StatusCancelled, StatusExpired,
	}

	allowed := map[Status][]Status{
		StatusPending:   {StatusConfirmed, StatusCancelled, StatusExpired},
		StatusConfirmed: {StatusActive, StatusCancelled, StatusExpired},
		StatusActive:    {StatusCompleted, StatusExpired},
		StatusCompleted: {},
		StatusCancelled: {},
		StatusExpired:   {},
	}

	for from, nexts := range allowed {
		permitted := map[Status]bool{}
		for _, n := range nexts {
			permitted[n] = true
		}
		for _, to := range allStatuses {
			b := &Booking{Status: from}
			err := b.transitionTo(to)
			if permitted[to] {
				assert.NoError(t, err, "%s -> %s should be allowed", from, to)
				assert.Equal(t, to, b.Status)
			} else {
				require.Error(t, err, "%s -> %s should be rejected", from, to)
				assert.True(t, errors.Is(err, ErrIllegalState))
				assert.Equal(t, from, b.Status, "status must not change on rejected transition")
			}
		}
	}
}

func TestTerminalStates(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusExpired.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.False(t, StatusActive.IsTerminal())
}

func TestInitialState(t *testing.T) {
	status, payment := initialState(PaymentMethodCash)
	assert.Equal(t, StatusConfirmed, status)
	assert.Equal(t, PaymentCompleted, payment)

	for _, method := range []string{"esewa", "khalti", "card", ""} {
		status, payment := initialState(method)
		assert.Equal(t, StatusPending, status, "method %q", method)
		assert.Equal(t, PaymentPending, payment, "method %q", method)
	}
}

func TestVehicleInfoNormalize(t *testing.T) {
	v := VehicleInfo{PlateNumber: "  ba 2 pa 1234 ", VehicleType: " Car "}.Normalize()
	assert.Equal(t, "BA 2 PA 1234", v.PlateNumber)
	assert.Equal(t, "car", v.VehicleType)
}
