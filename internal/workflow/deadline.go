package workflow

import (
	"fmt"
	"strings"
	"time"

	"translation-tracker/internal/apperr"
)

// DateLayout is the form layout of deadline fields.
const DateLayout = "2006-01-02"

// ParseDeadline reads a YYYY-MM-DD date as midnight UTC.
func ParseDeadline(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: deadline %q is not a YYYY-MM-DD date", apperr.ErrValidation, s)
	}
	return d, nil
}

// futureDeadline parses s and requires it to be strictly after now. The same
// rule applies to projects and activities.
func (e *Engine) futureDeadline(s string) (time.Time, error) {
	d, err := ParseDeadline(s)
	if err != nil {
		return time.Time{}, err
	}
	if !d.After(e.now()) {
		return time.Time{}, fmt.Errorf("%w: %s", apperr.ErrInvalidDeadline, d.Format(DateLayout))
	}
	return d, nil
}
