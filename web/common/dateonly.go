package common

import (
	"fmt"
	"time"

	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/utils"
)

// DateParamError reports a query date that is not YYYY-MM-DD.
type DateParamError struct {
	Value string
	Err   error
}

func (e *DateParamError) Error() string {
	return fmt.Sprintf("invalid date %q: %v", e.Value, e.Err)
}

func (e *DateParamError) Unwrap() error {
	return e.Err
}

// DateOnly binds a yyyy-MM-dd query parameter.
type DateOnly struct {
	time.Time
}

func (d *DateOnly) UnmarshalParam(s string) error {
	if s == "" {
		d.Time = time.Time{}
		return nil
	}

	t, err := time.Parse(utils.DateLayout, s)
	if err != nil {
		return &DateParamError{Value: s, Err: err}
	}

	d.Time = t
	return nil
}

// Midnight returns the start of the bound calendar day in loc, or the zero
// time when no date was given.
func (d *DateOnly) Midnight(loc *time.Location) time.Time {
	if d == nil || d.Time.IsZero() {
		return time.Time{}
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
}
