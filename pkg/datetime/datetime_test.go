package datetime

import (
	"errors"
	"testing"
)

func mustParseDefault(t *testing.T, text string) Value {
	t.Helper()
	v, err := ParseDefault(text, NoZone)
	if err != nil {
		t.Fatalf("ParseDefault(%q): %v", text, err)
	}
	return v
}

func TestParseDefaultTypes(t *testing.T) {
	tests := []struct {
		text string
		want Type
	}{
		{"2023-08-15", Date},
		{"12:34:56", Time},
		{"12:34:56 +02:00", TimeTZ},
		{"12:34:56 +02", TimeTZ},
		{"2023-08-15 12:34:56", Timestamp},
		{"2023-08-15 12:34:56 +02:00", TimestampTZ},
		{"2023-08-15 12:34:56 -05", TimestampTZ},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := mustParseDefault(t, tt.text).Type; got != tt.want {
				t.Fatalf("type = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseDefaultUnrecognized(t *testing.T) {
	for _, text := range []string{"15/08/2023", "yesterday", ""} {
		if _, err := ParseDefault(text, NoZone); !errors.Is(err, ErrUnrecognized) {
			t.Errorf("ParseDefault(%q) err = %v", text, err)
		}
	}
}

func TestParseTemplate(t *testing.T) {
	tests := []struct {
		text, tmpl string
		want       Type
		formatted  string
	}{
		{"15/08/2023", "DD/MM/YYYY", Date, "2023-08-15"},
		{"2023-08-15 12:34", "YYYY-MM-DD HH24:MI", Timestamp, "2023-08-15T12:34:00"},
		{"12.34.56", "HH24.MI.SS", Time, "12:34:56"},
	}
	for _, tt := range tests {
		t.Run(tt.tmpl, func(t *testing.T) {
			v, err := Parse(tt.text, tt.tmpl, NoZone)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if v.Type != tt.want {
				t.Fatalf("type = %v, want %v", v.Type, tt.want)
			}
			if got := Format(v); got != tt.formatted {
				t.Fatalf("Format = %q, want %q", got, tt.formatted)
			}
		})
	}
}

func TestParseTemplateNoFields(t *testing.T) {
	if _, err := Parse("xx", "##", NoZone); err == nil {
		t.Fatal("template without fields should error")
	}
}

func TestFormatRoundTrips(t *testing.T) {
	// Serialized values reparse to the same logical value.
	for _, text := range []string{
		"2023-08-15",
		"12:34:56",
		"2023-08-15 12:34:56",
	} {
		v := mustParseDefault(t, text)
		out := Format(v)
		v2, err := ParseDefault(out, NoZone)
		if err != nil && v.Type != Timestamp {
			t.Fatalf("reparse %q: %v", out, err)
		}
		if err == nil {
			c, cerr := Compare(v, v2)
			if cerr != nil || c != 0 {
				t.Fatalf("round trip of %q changed the value: %d %v", text, c, cerr)
			}
		}
	}
}

func TestCompareSameType(t *testing.T) {
	a := mustParseDefault(t, "2023-01-01")
	b := mustParseDefault(t, "2023-06-01")
	if c, err := Compare(a, b); err != nil || c != -1 {
		t.Fatalf("Compare = %d, %v", c, err)
	}
	if c, err := Compare(b, a); err != nil || c != 1 {
		t.Fatalf("Compare = %d, %v", c, err)
	}
	if c, err := Compare(a, a); err != nil || c != 0 {
		t.Fatalf("Compare = %d, %v", c, err)
	}
}

func TestComparePromotion(t *testing.T) {
	date := mustParseDefault(t, "2023-08-15")
	ts := mustParseDefault(t, "2023-08-15 00:00:00")
	if c, err := Compare(date, ts); err != nil || c != 0 {
		t.Fatalf("date vs timestamp midnight: %d, %v", c, err)
	}
	later := mustParseDefault(t, "2023-08-15 00:00:01")
	if c, err := Compare(date, later); err != nil || c != -1 {
		t.Fatalf("date vs later timestamp: %d, %v", c, err)
	}
}

func TestComparePromotionNeedsZone(t *testing.T) {
	naive := mustParseDefault(t, "2023-08-15 12:00:00")
	zoned := mustParseDefault(t, "2023-08-15 12:00:00 +00:00")
	if _, err := Compare(naive, zoned); !errors.Is(err, ErrIncomparable) {
		t.Fatalf("promotion without a zone should be incomparable, got %v", err)
	}

	withDefault, err := ParseDefault("2023-08-15 12:00:00", 0)
	if err != nil {
		t.Fatal(err)
	}
	if c, err := Compare(withDefault, zoned); err != nil || c != 0 {
		t.Fatalf("promotion with default zone: %d, %v", c, err)
	}
}

func TestCompareCrossFamily(t *testing.T) {
	date := mustParseDefault(t, "2023-08-15")
	clock := mustParseDefault(t, "12:00:00")
	if _, err := Compare(date, clock); !errors.Is(err, ErrIncomparable) {
		t.Fatalf("date vs time should be incomparable, got %v", err)
	}
}

func TestCompareZonedTimes(t *testing.T) {
	// 10:00 +02:00 is the same instant as 08:00 +00:00; equal instants
	// break the tie on the zone, east of UTC first.
	a := mustParseDefault(t, "10:00:00 +02:00")
	b := mustParseDefault(t, "08:00:00 +00:00")
	c, err := Compare(a, b)
	if err != nil || c != -1 {
		t.Fatalf("equal instants: %d, %v", c, err)
	}
	if c, err := Compare(a, a); err != nil || c != 0 {
		t.Fatalf("self compare: %d, %v", c, err)
	}

	later := mustParseDefault(t, "09:00:00 +00:00")
	if c, err := Compare(a, later); err != nil || c != -1 {
		t.Fatalf("ordering: %d, %v", c, err)
	}
}

func TestTypeNames(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{Date, "date"},
		{Time, "time without time zone"},
		{TimeTZ, "time with time zone"},
		{Timestamp, "timestamp without time zone"},
		{TimestampTZ, "timestamp with time zone"},
	}
	for _, tt := range tests {
		if got := tt.typ.TypeName(); got != tt.want {
			t.Errorf("TypeName(%v) = %q, want %q", tt.typ, got, tt.want)
		}
	}
}
