package core

import (
	"errors"
	"math"
	"testing"

	"github.com/inovacc/nutrilog/internal/model"
)

func TestValidateQuantity(t *testing.T) {
	tests := []struct {
		q     float64
		valid bool
	}{
		{150, true},
		{0.5, true},
		{0, false},
		{-1, false},
		{math.NaN(), false},
		{math.Inf(1), false},
	}

	for _, tt := range tests {
		err := ValidateQuantity(tt.q)
		if (err == nil) != tt.valid {
			t.Errorf("ValidateQuantity(%v) = %v, want valid=%v", tt.q, err, tt.valid)
		}
	}
}

func TestValidateBarcode(t *testing.T) {
	tests := []struct {
		code  string
		valid bool
	}{
		{"12345678", true},
		{"12345678901234567890", true},
		{"1234567", false},
		{"123456789012345678901", false},
		{"1234 5678", false},
		{"", false},
	}

	for _, tt := range tests {
		err := ValidateBarcode(tt.code)
		if (err == nil) != tt.valid {
			t.Errorf("ValidateBarcode(%q) = %v, want valid=%v", tt.code, err, tt.valid)
		}
	}
}

func TestValidateFood(t *testing.T) {
	good := model.FoodItem{Name: "Rice", Calories: 130, Protein: 2.7, Carbs: 28, Fat: 0.3}
	if err := ValidateFood(good); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := good
	bad.Fat = math.NaN()

	var verr *ValidationError
	if err := ValidateFood(bad); !errors.As(err, &verr) || verr.Field != "fat" {
		t.Errorf("expected fat validation error, got %v", err)
	}

	bad = good
	bad.Barcode = "12ab"
	if err := ValidateFood(bad); !errors.As(err, &verr) || verr.Field != "barcode" {
		t.Errorf("expected barcode validation error, got %v", err)
	}
}

func TestValidateSettings(t *testing.T) {
	if err := ValidateSettings(model.DefaultSettings()); err != nil {
		t.Fatalf("default settings rejected: %v", err)
	}

	if err := ValidateSettings(model.UserSettings{BasalMetabolism: 2000, ProteinGoal: -1}); !IsValidation(err) {
		t.Errorf("negative goal accepted: %v", err)
	}
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Field: "quantity", Reason: "must be a number greater than 0"}

	if got, want := err.Error(), "invalid quantity: must be a number greater than 0"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
