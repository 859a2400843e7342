package cmd

import (
	"time"

	"github.com/inovacc/nutrilog/internal/nutrition"
	"github.com/spf13/pflag"
)

// dateValue is a YYYY-MM-DD flag. The empty value means today.
type dateValue struct {
	date *string
}

var _ pflag.Value = (*dateValue)(nil)

func newDateValue(p *string) *dateValue {
	return &dateValue{date: p}
}

func (d *dateValue) String() string {
	if d.date == nil {
		return ""
	}

	return *d.date
}

func (d *dateValue) Set(s string) error {
	if _, err := nutrition.ParseDate(s, time.UTC); err != nil {
		return err
	}

	*d.date = s

	return nil
}

func (d *dateValue) Type() string { return "date" }

// dateFlag adds a --date flag to fs.
func dateFlag(fs *pflag.FlagSet, p *string, usage string) {
	fs.Var(newDateValue(p), "date", usage)
}

// resolveDate returns date, or today's date in loc when empty.
func resolveDate(date string, now time.Time, loc *time.Location) string {
	if date != "" {
		return date
	}

	return nutrition.DateOf(now, loc)
}

// anyChanged reports whether at least one of the named flags was set.
func anyChanged(fs *pflag.FlagSet, names ...string) bool {
	for _, name := range names {
		if fs.Changed(name) {
			return true
		}
	}

	return false
}
