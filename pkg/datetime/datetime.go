// Package datetime implements the datetime service behind the .datetime()
// item method: template-driven parsing of date/time text, serialization of
// the five logical subtypes, and cross-subtype comparison with promotion.
//
// Values cannot appear in a source document; they are synthesized during
// evaluation and serialized back to text on output.
package datetime

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// Type is the logical subtype of a datetime value.
type Type int

const (
	Date Type = iota
	Time
	TimeTZ
	Timestamp
	TimestampTZ
)

// TypeName returns the SQL type name reported by the .type() item method.
func (t Type) TypeName() string {
	switch t {
	case Date:
		return "date"
	case Time:
		return "time without time zone"
	case TimeTZ:
		return "time with time zone"
	case Timestamp:
		return "timestamp without time zone"
	default:
		return "timestamp with time zone"
	}
}

// NoZone marks an absent timezone offset.
const NoZone = math.MinInt32

// Value is a parsed datetime item. For zoned subtypes T holds the UTC
// instant and TZ the display offset in seconds east of UTC; for naive
// subtypes T holds the wall-clock reading in UTC location and TZ a default
// offset to use for promotions, or NoZone.
type Value struct {
	T    time.Time
	Type Type
	TZ   int
}

// ErrUnrecognized is returned when text matches no parse template.
var ErrUnrecognized = errors.New("datetime: unrecognized format")

// ErrIncomparable is returned by Compare for subtype pairs outside the
// promotion matrix or when a required timezone cannot be resolved.
var ErrIncomparable = errors.New("datetime: values are not comparable")

// template is a pre-translated parse template: the reference layout plus
// the field classes it captures.
type template struct {
	layout  string
	hasDate bool
	hasTime bool
	hasTZ   bool
}

// defaultTemplates is the fixed, immutable list of ISO-like formats tried
// in order when .datetime() is called without an explicit template.
var defaultTemplates = [...]template{
	{"2006-01-02 15:04:05 -07:00", true, true, true},
	{"2006-01-02 15:04:05 -07", true, true, true},
	{"2006-01-02 15:04:05", true, true, false},
	{"2006-01-02", true, false, false},
	{"15:04:05 -07:00", false, true, true},
	{"15:04:05 -07", false, true, true},
	{"15:04:05", false, true, false},
}

// templateTokens maps format-template tokens to reference-layout fragments.
// Longest tokens first so the translator scans greedily.
var templateTokens = []struct {
	tok     string
	layout  string
	isDate  bool
	isTime  bool
	isZone  bool
}{
	{"TZH:TZM", "-07:00", false, false, true},
	{"TZHTZM", "-0700", false, false, true},
	{"HH24", "15", false, true, false},
	{"HH12", "03", false, true, false},
	{"YYYY", "2006", true, false, false},
	{"TZH", "-07", false, false, true},
	{"MON", "Jan", true, false, false},
	{"HH", "03", false, true, false},
	{"MM", "01", true, false, false},
	{"DD", "02", true, false, false},
	{"MI", "04", false, true, false},
	{"SS", "05", false, true, false},
	{"MS", "000", false, true, false},
	{"AM", "PM", false, true, false},
	{"PM", "PM", false, true, false},
}

// translateTemplate converts a datetime format template to a reference
// layout, noting which field classes it captures.
func translateTemplate(tmpl string) (template, error) {
	var out template
	var b strings.Builder
	upper := strings.ToUpper(tmpl)
	i := 0
scan:
	for i < len(tmpl) {
		for _, t := range templateTokens {
			if strings.HasPrefix(upper[i:], t.tok) {
				b.WriteString(t.layout)
				out.hasDate = out.hasDate || t.isDate
				out.hasTime = out.hasTime || t.isTime
				out.hasTZ = out.hasTZ || t.isZone
				i += len(t.tok)
				continue scan
			}
		}
		b.WriteByte(tmpl[i])
		i++
	}
	if !out.hasDate && !out.hasTime {
		return out, fmt.Errorf("datetime: template %q captures no fields", tmpl)
	}
	out.layout = b.String()
	return out, nil
}

func (tp template) logicalType() Type {
	switch {
	case tp.hasDate && tp.hasTime && tp.hasTZ:
		return TimestampTZ
	case tp.hasDate && tp.hasTime:
		return Timestamp
	case tp.hasDate:
		return Date
	case tp.hasTZ:
		return TimeTZ
	default:
		return Time
	}
}

func (tp template) parse(text string, defaultTZ int) (Value, error) {
	t, err := time.Parse(tp.layout, text)
	if err != nil {
		return Value{}, ErrUnrecognized
	}
	v := Value{Type: tp.logicalType()}
	if tp.hasTZ {
		_, off := t.Zone()
		v.TZ = off
		v.T = t.UTC()
	} else {
		v.TZ = defaultTZ
		v.T = t
	}
	return v, nil
}

// Parse parses text with an explicit format template. defaultTZ supplies
// the timezone offset (seconds east of UTC, or NoZone) used when the text
// itself carries none.
func Parse(text, tmpl string, defaultTZ int) (Value, error) {
	tp, err := translateTemplate(tmpl)
	if err != nil {
		return Value{}, err
	}
	return tp.parse(text, defaultTZ)
}

// ParseDefault tries the fixed list of ISO-like formats in order, returning
// the first successful parse.
func ParseDefault(text string, defaultTZ int) (Value, error) {
	for _, tp := range defaultTemplates {
		if v, err := tp.parse(text, defaultTZ); err == nil {
			return v, nil
		}
	}
	return Value{}, ErrUnrecognized
}

// ZoneOffset resolves a timezone name to its offset in seconds east of UTC
// at the given reference instant.
func ZoneOffset(name string, ref time.Time) (int, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return 0, err
	}
	_, off := ref.In(loc).Zone()
	return off, nil
}

// Format serializes the value back to text per its logical subtype.
func Format(v Value) string {
	switch v.Type {
	case Date:
		return v.T.Format("2006-01-02")
	case Time:
		return v.T.Format("15:04:05")
	case TimeTZ:
		return v.display().Format("15:04:05-07:00")
	case Timestamp:
		return v.T.Format("2006-01-02T15:04:05")
	default:
		return v.display().Format("2006-01-02T15:04:05-07:00")
	}
}

// display shifts a zoned value into its display offset.
func (v Value) display() time.Time {
	off := v.TZ
	if off == NoZone {
		off = 0
	}
	return v.T.In(time.FixedZone("", off))
}

// clockSeconds returns the wall-clock reading of a time-family value as
// seconds since midnight.
func clockSeconds(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}

func isTimeFamily(t Type) bool { return t == Time || t == TimeTZ }

// utcClock normalizes a time-family value to a UTC clock reading for
// comparison. Naive times promote to zoned times using their default
// offset; an unresolvable offset makes the pair incomparable.
func utcClock(v Value) (int, int, error) {
	switch v.Type {
	case Time:
		if v.TZ == NoZone {
			return 0, 0, ErrIncomparable
		}
		return clockSeconds(v.T) - v.TZ, v.TZ, nil
	default: // TimeTZ stores the UTC instant already
		return clockSeconds(v.T), v.TZ, nil
	}
}

// instant normalizes a date/timestamp-family value to a UTC instant.
// Dates promote to timestamps at midnight; naive values promote to zoned
// values using their default offset when the other side is zoned.
func instant(v Value, needZone bool) (time.Time, error) {
	if !needZone {
		return v.T, nil
	}
	switch v.Type {
	case TimestampTZ:
		return v.T, nil
	default:
		if v.TZ == NoZone {
			return time.Time{}, ErrIncomparable
		}
		return v.T.Add(-time.Duration(v.TZ) * time.Second), nil
	}
}

// Compare orders two datetime values using the promotion matrix: values of
// the same subtype compare directly; date promotes to timestamp and further
// to timestamp-with-zone; time promotes to time-with-zone. The date family
// and the time family never compare against each other.
func Compare(a, b Value) (int, error) {
	if isTimeFamily(a.Type) != isTimeFamily(b.Type) {
		return 0, ErrIncomparable
	}

	if isTimeFamily(a.Type) {
		if a.Type == Time && b.Type == Time {
			return intCompare(clockSeconds(a.T), clockSeconds(b.T)), nil
		}
		ca, za, err := utcClock(a)
		if err != nil {
			return 0, err
		}
		cb, zb, err := utcClock(b)
		if err != nil {
			return 0, err
		}
		if c := intCompare(ca, cb); c != 0 {
			return c, nil
		}
		// Equal normalized readings order by zone, east before west.
		return intCompare(zb, za), nil
	}

	needZone := a.Type == TimestampTZ || b.Type == TimestampTZ
	ta, err := instant(a, needZone)
	if err != nil {
		return 0, err
	}
	tb, err := instant(b, needZone)
	if err != nil {
		return 0, err
	}
	return ta.Compare(tb), nil
}

func intCompare(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
