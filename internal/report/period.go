// Package report renders analysis results for the command line.
package report

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinYear is the earliest accepted period start year.
const MinYear = 2019

var (
	ErrDateFormat   = errors.New("date format incorrect, expected YYYY/MM/DD")
	ErrYearTooEarly = fmt.Errorf("year should be greater than %d", MinYear-1)
)

// ParsePeriodStart parses the --date flag ("YYYY/MM/DD") into a UTC midnight.
func ParsePeriodStart(s string) (time.Time, error) {
	var parts []string
	for _, p := range strings.Split(s, "/") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) != 3 {
		return time.Time{}, ErrDateFormat
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, ErrDateFormat
	}
	if year < MinYear {
		return time.Time{}, ErrYearTooEarly
	}

	d, err := time.Parse("2006/1/2", strings.Join(parts, "/"))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrDateFormat, err)
	}
	return d, nil
}
