package validator_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "github.com/rgaultier/taxiresa/internal"
	"github.com/rgaultier/taxiresa/internal/validator"
	"github.com/rgaultier/taxiresa/tests/utils"
)

func validBaseRequest() models.BookingRequest {
	return models.BookingRequest{
		Name:      "Jean Dupont",
		Phone:     "0612345678",
		Departure: "Gare du Nord",
		Arrival:   "CDG",
		Date:      time.Now().Add(24 * time.Hour),
	}
}

func fieldNames(t *testing.T, err error) []string {
	t.Helper()
	var fields validator.FieldErrors
	require.True(t, errors.As(err, &fields))
	names := make([]string, len(fields))
	for i, fe := range fields {
		names[i] = fe.Field
	}
	return names
}

func TestNewCustomValidator(t *testing.T) {
	v := validator.NewCustomValidator()
	assert.NotNil(t, v)
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		name    string
		phone   string
		wantErr bool
	}{
		{"Spaced mobile", "06 15 39 22 50", false},
		{"Compact mobile", "0612345678", false},
		{"International prefix", "+33 6 15 39 22 50", false},
		{"Double-zero prefix", "0033615392250", false},
		{"Dotted landline", "01.42.68.53.00", false},
		{"Too short", "123", true},
		{"Missing prefix", "615392250", true},
		{"Letters", "06 15 39 22 5a", true},
		{"Empty", "", true},
	}

	v := validator.NewCustomValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validBaseRequest()
			req.Phone = tt.phone
			err := v.Validate(req)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, fieldNames(t, err), "phone")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateDate(t *testing.T) {
	v := validator.NewCustomValidator()

	t.Run("Future date passes", func(t *testing.T) {
		req := validBaseRequest()
		req.Date = time.Now().Add(time.Hour)
		assert.NoError(t, v.Validate(req))
	})

	t.Run("Past date fails", func(t *testing.T) {
		req := validBaseRequest()
		req.Date = time.Now().Add(-time.Minute)
		err := v.Validate(req)
		require.Error(t, err)
		assert.Contains(t, fieldNames(t, err), "date")
	})

	t.Run("Zero date fails", func(t *testing.T) {
		req := validBaseRequest()
		req.Date = time.Time{}
		assert.Error(t, v.Validate(req))
	})
}

func TestValidateArrivalDistinctFromDeparture(t *testing.T) {
	v := validator.NewCustomValidator()

	tests := []struct {
		name      string
		departure string
		arrival   string
		wantErr   bool
	}{
		{"Distinct addresses", "Gare du Nord", "CDG", false},
		{"Identical", "Gare du Nord", "Gare du Nord", true},
		{"Identical ignoring case", "GARE DU NORD", "gare du nord", true},
		{"Identical ignoring surrounding spaces", "Gare du Nord", "  Gare du Nord  ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validBaseRequest()
			req.Departure = tt.departure
			req.Arrival = tt.arrival
			err := v.Validate(req)
			if tt.wantErr {
				require.Error(t, err)
				// the error belongs to the arrival field
				assert.Contains(t, fieldNames(t, err), "arrival")
				assert.NotContains(t, fieldNames(t, err), "departure")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassengers(t *testing.T) {
	v := validator.NewCustomValidator()

	tests := []struct {
		name       string
		passengers *int
		wantErr    bool
	}{
		{"Absent", nil, false},
		{"Lower bound", utils.IntPtr(1), false},
		{"Upper bound", utils.IntPtr(7), false},
		{"Zero", utils.IntPtr(0), true},
		{"Above range", utils.IntPtr(8), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validBaseRequest()
			req.Passengers = tt.passengers
			err := v.Validate(req)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, fieldNames(t, err), "passengers")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	v := validator.NewCustomValidator()

	t.Run("Single character fails", func(t *testing.T) {
		req := validBaseRequest()
		req.Name = "J"
		err := v.Validate(req)
		require.Error(t, err)
		assert.Contains(t, fieldNames(t, err), "name")
	})

	t.Run("Empty fails", func(t *testing.T) {
		req := validBaseRequest()
		req.Name = ""
		assert.Error(t, v.Validate(req))
	})
}

func TestValidateLuggagesUnconstrained(t *testing.T) {
	v := validator.NewCustomValidator()
	req := validBaseRequest()
	req.Luggages = utils.IntPtr(42)
	assert.NoError(t, v.Validate(req))
}
