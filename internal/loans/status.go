package loans

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DeriveStatus computes the lifecycle status of a record for a given moment.
// It reads only the two return dates:
//
//	actual return set                      -> returned
//	expected return set and today past it  -> overdue
//	otherwise                              -> open
//
// A loan due exactly today is still open (strict comparison), and a missing
// expected date never yields overdue.
func DeriveStatus(rec *LoanRecord, now time.Time) Status {
	if rec.ActualReturn != nil {
		return StatusReturned
	}
	if rec.ExpectedReturn != nil && dateOnly(now).After(dateOnly(*rec.ExpectedReturn)) {
		return StatusOverdue
	}
	return StatusOpen
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Matches applies the three conjunctive filters. Name matches requester or
// supervisor; vehicle matches the SV reference with absent values treated as
// empty. Both are case- and accent-insensitive substring matches.
func (f Filter) Matches(rec *LoanRecord, st Status) bool {
	if f.Name != "" {
		needle := fold(f.Name)
		if !strings.Contains(fold(rec.RequesterName), needle) &&
			!strings.Contains(fold(rec.SupervisorName), needle) {
			return false
		}
	}
	if f.Vehicle != "" {
		if !strings.Contains(fold(rec.VehicleSV), fold(f.Vehicle)) {
			return false
		}
	}
	if len(f.Statuses) > 0 {
		found := false
		for _, s := range f.Statuses {
			if s == st {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// fold lowercases and strips diacritics so "José" matches "jose".
func fold(s string) string {
	out, _, err := transform.String(deaccent, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}

// ParseStatuses converts a comma-separated query value into a status set.
// Unknown values are rejected rather than silently dropped.
func ParseStatuses(s string) ([]Status, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out []Status
	for _, part := range strings.Split(s, ",") {
		switch Status(strings.ToLower(strings.TrimSpace(part))) {
		case StatusOpen:
			out = append(out, StatusOpen)
		case StatusOverdue:
			out = append(out, StatusOverdue)
		case StatusReturned:
			out = append(out, StatusReturned)
		default:
			return nil, NewInvalidArgumentError("unknown status " + strings.TrimSpace(part))
		}
	}
	return out, nil
}
