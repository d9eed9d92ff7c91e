package interpreter

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Date detection runs an explicit, ordered list of strategies with a
// winner-takes-all policy. The first strategy that produces a result wins;
// a named month can therefore never overwrite an explicit range.
//
// Order: explicit "del X al Y" range, literal date pair, single literal
// date (start only), named month, relative phrase.

var (
	reDayFirst      = regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})[/-](\d{4})`)
	reYearFirst     = regexp.MustCompile(`(\d{4})[/-](\d{1,2})[/-](\d{1,2})`)
	reExplicitRange = regexp.MustCompile(`del\s+(\d{1,2}[/-]\d{1,2}[/-]\d{4})\s+al\s+(\d{1,2}[/-]\d{1,2}[/-]\d{4})`)
	reYear          = regexp.MustCompile(`\b(20\d{2})\b`)
)

var monthNames = []struct {
	name  string
	month time.Month
}{
	{"enero", time.January}, {"febrero", time.February}, {"marzo", time.March},
	{"abril", time.April}, {"mayo", time.May}, {"junio", time.June},
	{"julio", time.July}, {"agosto", time.August}, {"septiembre", time.September},
	{"octubre", time.October}, {"noviembre", time.November}, {"diciembre", time.December},
}

// ExtractDateRange detects an inclusive date range in lowercase free text.
// Either pointer may be nil: a single literal date sets only the start, and
// text with no date signal sets neither.
func ExtractDateRange(text string, now time.Time) (start, end *time.Time) {
	type strategy func(string, time.Time) (*time.Time, *time.Time)
	strategies := []strategy{
		extractExplicitRange,
		extractLiteralPair,
		extractSingleLiteral,
		extractNamedMonth,
		extractRelativePhrase,
	}
	for _, s := range strategies {
		if from, to := s(text, now); from != nil || to != nil {
			return from, to
		}
	}
	return nil, nil
}

// extractExplicitRange handles "del 1/10/2024 al 15/10/2024".
func extractExplicitRange(text string, _ time.Time) (*time.Time, *time.Time) {
	m := reExplicitRange.FindStringSubmatch(text)
	if m == nil {
		return nil, nil
	}
	from, okFrom := parseFlexibleDate(m[1])
	to, okTo := parseFlexibleDate(m[2])
	if !okFrom || !okTo {
		return nil, nil
	}
	to = endOfDay(to)
	return &from, &to
}

// extractLiteralPair takes two or more loose literal dates as min/max of an
// inferred range.
func extractLiteralPair(text string, _ time.Time) (*time.Time, *time.Time) {
	dates := literalDates(text)
	if len(dates) < 2 {
		return nil, nil
	}
	from, to := dates[0], dates[0]
	for _, d := range dates[1:] {
		if d.Before(from) {
			from = d
		}
		if d.After(to) {
			to = d
		}
	}
	to = endOfDay(to)
	return &from, &to
}

// extractSingleLiteral sets only the start bound.
func extractSingleLiteral(text string, _ time.Time) (*time.Time, *time.Time) {
	dates := literalDates(text)
	if len(dates) != 1 {
		return nil, nil
	}
	return &dates[0], nil
}

// extractNamedMonth resolves a Spanish month name, optionally paired with an
// explicit 20xx year, to the full calendar month.
func extractNamedMonth(text string, now time.Time) (*time.Time, *time.Time) {
	for _, mn := range monthNames {
		if !strings.Contains(text, mn.name) {
			continue
		}
		year := now.Year()
		if m := reYear.FindStringSubmatch(text); m != nil {
			year, _ = strconv.Atoi(m[1])
		}
		from := time.Date(year, mn.month, 1, 0, 0, 0, 0, now.Location())
		to := endOfDay(from.AddDate(0, 1, -1))
		return &from, &to
	}
	return nil, nil
}

// extractRelativePhrase handles "última semana", "último mes", "este mes".
func extractRelativePhrase(text string, now time.Time) (*time.Time, *time.Time) {
	switch {
	case strings.Contains(text, "última semana") || strings.Contains(text, "ultima semana"):
		from := now.AddDate(0, 0, -7)
		return &from, &now
	case strings.Contains(text, "último mes") || strings.Contains(text, "ultimo mes"):
		from := now.AddDate(0, 0, -30)
		return &from, &now
	case strings.Contains(text, "este mes"):
		from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return &from, &now
	}
	return nil, nil
}

// literalDates collects every parseable literal date in the text. A 4-digit
// component larger than 31 fixes the year position; otherwise D/M/Y is
// assumed.
func literalDates(text string) []time.Time {
	var out []time.Time
	for _, m := range reDayFirst.FindAllStringSubmatch(text, -1) {
		if d, ok := dateFromParts(m[1], m[2], m[3]); ok {
			out = append(out, d)
		}
	}
	for _, m := range reYearFirst.FindAllStringSubmatch(text, -1) {
		if d, ok := dateFromParts(m[1], m[2], m[3]); ok {
			out = append(out, d)
		}
	}
	return out
}

func dateFromParts(a, b, c string) (time.Time, bool) {
	na, _ := strconv.Atoi(a)
	nb, _ := strconv.Atoi(b)
	nc, _ := strconv.Atoi(c)

	var year, month, day int
	switch {
	case nc > 31: // D/M/Y
		year, month, day = nc, nb, na
	case na > 31: // Y/M/D
		year, month, day = na, nb, nc
	default: // assume D/M/Y
		year, month, day = nc, nb, na
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local), true
}

func parseFlexibleDate(s string) (time.Time, bool) {
	m := reDayFirst.FindStringSubmatch(s)
	if m == nil {
		m = reYearFirst.FindStringSubmatch(s)
	}
	if m == nil {
		return time.Time{}, false
	}
	return dateFromParts(m[1], m[2], m[3])
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
