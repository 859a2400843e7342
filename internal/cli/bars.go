package cli

import (
	"math"
	"strconv"
	"strings"

	"github.com/inovacc/nutrilog/internal/nutrition"
)

const (
	barFull  = "█"
	barEmpty = "░"
)

// bar renders percent (0..100) as a width-cell bar.
func bar(percent float64, width int) string {
	if width <= 0 {
		return ""
	}

	filled := filledCells(percent, width)

	return strings.Repeat(barFull, filled) + dimStyle.Render(strings.Repeat(barEmpty, width-filled))
}

func filledCells(percent float64, width int) int {
	if math.IsNaN(percent) || percent <= 0 {
		return 0
	}

	filled := int(math.Round(percent / 100 * float64(width)))

	return min(filled, width)
}

// macroMiniBar renders the protein/carbs/fat split as one colored bar.
func macroMiniBar(split nutrition.MacroSplit, width int) string {
	p := filledCells(split.Protein, width)
	c := filledCells(split.Carbs, width)
	f := filledCells(split.Fat, width)

	// rounding may overflow by one cell
	for p+c+f > width {
		switch {
		case f > 0:
			f--
		case c > 0:
			c--
		default:
			p--
		}
	}

	empty := 0
	if p+c+f == 0 {
		empty = width
	}

	return proteinStyle.Render(strings.Repeat(barFull, p)) +
		carbsStyle.Render(strings.Repeat(barFull, c)) +
		fatStyle.Render(strings.Repeat(barFull, f)) +
		dimStyle.Render(strings.Repeat(barEmpty, empty))
}

// signed renders a calorie balance with an explicit sign.
func signed(v float64) string {
	s := kcal(v)
	if v > 0 {
		return "+" + s
	}

	return s
}

func kcal(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}

	r := math.Round(v)
	if r == 0 {
		// no "-0"
		r = 0
	}

	return strconv.FormatFloat(r, 'f', 0, 64)
}

func grams(v float64) string {
	return nutrition.FormatOneDecimal(v)
}
