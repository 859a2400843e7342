package core

import (
	"math"
	"strings"

	"github.com/inovacc/nutrilog/internal/model"
)

const (
	MinBarcodeLength = 8
	MaxBarcodeLength = 20
)

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ValidateQuantity requires a finite amount greater than zero.
func ValidateQuantity(q float64) error {
	if !finite(q) || q <= 0 {
		return invalid("quantity", "must be a number greater than 0")
	}

	return nil
}

// ValidateBarcode requires 8 to 20 ASCII digits.
func ValidateBarcode(code string) error {
	if len(code) < MinBarcodeLength || len(code) > MaxBarcodeLength {
		return invalid("barcode", "must have between 8 and 20 digits")
	}

	for _, r := range code {
		if r < '0' || r > '9' {
			return invalid("barcode", "must contain digits only")
		}
	}

	return nil
}

// ValidateFood checks name, macros and the optional barcode.
func ValidateFood(f model.FoodItem) error {
	if strings.TrimSpace(f.Name) == "" {
		return invalid("name", "must not be empty")
	}

	macros := []struct {
		field string
		value float64
	}{
		{"calories", f.Calories},
		{"protein", f.Protein},
		{"carbs", f.Carbs},
		{"fat", f.Fat},
	}

	for _, m := range macros {
		if !finite(m.value) || m.value < 0 {
			return invalid(m.field, "must be a number >= 0")
		}
	}

	if code := strings.TrimSpace(f.Barcode); code != "" {
		return ValidateBarcode(code)
	}

	return nil
}

// ValidateSettings requires a positive basal metabolism and goals >= 0.
func ValidateSettings(s model.UserSettings) error {
	if s.BasalMetabolism <= 0 {
		return invalid("basal metabolism", "must be greater than 0")
	}

	goals := []struct {
		field string
		value float64
	}{
		{"protein goal", s.ProteinGoal},
		{"carbs goal", s.CarbsGoal},
		{"fat goal", s.FatGoal},
	}

	for _, g := range goals {
		if !finite(g.value) || g.value < 0 {
			return invalid(g.field, "must be a number >= 0")
		}
	}

	return nil
}

// ValidateCredentials requires a user name and password.
func ValidateCredentials(user, password string) error {
	if strings.TrimSpace(user) == "" {
		return invalid("user", "must not be empty")
	}

	if password == "" {
		return invalid("password", "must not be empty")
	}

	return nil
}
