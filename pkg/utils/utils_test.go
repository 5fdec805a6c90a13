package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInt(t *testing.T) {
	assert.Equal(t, 7, ParseInt("7", 1))
	assert.Equal(t, 1, ParseInt("", 1))
	assert.Equal(t, 1, ParseInt("abc", 1))
	assert.Equal(t, 10, ParseInt("0", 10))
	assert.Equal(t, 10, ParseInt("-3", 10))
}

func TestClampInt(t *testing.T) {
	assert.Equal(t, 1, ClampInt(0, 1, 50))
	assert.Equal(t, 50, ClampInt(80, 1, 50))
	assert.Equal(t, 20, ClampInt(20, 1, 50))
	assert.Equal(t, 500, ClampInt(500, 1, 0), "zero max means unbounded")
}

func TestContainsFold(t *testing.T) {
	assert.True(t, ContainsFold("Accra Central", "accra"))
	assert.True(t, ContainsFold("Kumasi", ""))
	assert.False(t, ContainsFold("Kumasi", "tamale"))
}

func TestPagination(t *testing.T) {
	assert.Equal(t, 3, CalculateTotalPages(21, 10))
	assert.Equal(t, 0, CalculateTotalPages(0, 10))
	assert.Equal(t, 20, CalculateOffset(3, 10))
	assert.Equal(t, 0, CalculateOffset(0, 10))
	assert.Equal(t, math.MaxInt, CalculateOffset(1e17, 100), "huge pages saturate instead of wrapping")
	assert.GreaterOrEqual(t, CalculateOffset(math.MaxInt, math.MaxInt), 0)
}

type sample struct {
	TripID string `json:"trip_id" validate:"required,uuid"`
	Seats  int    `json:"seats" validate:"min=1,max=100"`
	Status string `json:"status" validate:"omitempty,oneof=scheduled cancelled"`
}

func TestValidateStruct(t *testing.T) {
	assert.Nil(t, ValidateStruct(sample{TripID: "0b9e4b8a-3c1f-4f7e-9a53-1d2c3b4a5e6f", Seats: 2}))

	errs := ValidateStruct(sample{TripID: "nope", Seats: 0, Status: "boarding"})
	assert.Equal(t, map[string]string{
		"TripID": "Must be a valid UUID",
		"Seats":  "Minimum length is 1",
		"Status": "Must be one of: scheduled, cancelled",
	}, errs)

	assert.Equal(t,
		"Seats: Minimum length is 1; Status: Must be one of: scheduled, cancelled; TripID: Must be a valid UUID",
		FormatValidationErrors(errs))
}
