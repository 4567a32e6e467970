package schema

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"
)

func TestCoerceInt(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    int64
		wantErr bool
	}{
		{"int", 5, 5, false},
		{"int8", int8(-3), -3, false},
		{"uint16", uint16(9), 9, false},
		{"uint64 overflow", uint64(math.MaxUint64), 0, true},
		{"whole float", 120.0, 120, false},
		{"fractional float", 1.5, 0, true},
		{"NaN", math.NaN(), 0, true},
		{"json number", json.Number("77"), 77, false},
		{"json number whole float", json.Number("8.0"), 8, false},
		{"json number fractional", json.Number("8.5"), 0, true},
		{"decimal string", " 42 ", 42, false},
		{"float string", "4.2", 0, true},
		{"bool", true, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Coerce(FieldTypeInt, tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Coerce(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Coerce(%v) = %v (%T), want %v", tt.input, got, got, tt.want)
			}
		})
	}
}

func TestCoerceInt_Overflow(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  float64
	}{
		{"uint64 max", uint64(math.MaxUint64), float64(uint64(math.MaxUint64))},
		{"float", 1e20, 1e20},
		{"json number", json.Number("100000000000000000000"), 1e20},
		{"negative json number", json.Number("-1e30"), -1e30},
		{"decimal string", "100000000000000000000", 1e20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Coerce(FieldTypeInt, tt.input)
			var ov *OverflowError
			if !errors.As(err, &ov) {
				t.Fatalf("Coerce(%v) error = %v, want overflow", tt.input, err)
			}
			if ov.Value != tt.want {
				t.Errorf("overflow value = %v, want %v", ov.Value, tt.want)
			}
			var ce *CoercionError
			if !errors.As(err, &ce) || ce.Message != "must be an integer" {
				t.Errorf("Coerce(%v) error = %v, want coercion error", tt.input, err)
			}
		})
	}
}

func TestCoerceFloat(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    float64
		wantErr bool
	}{
		{"float64", 2.5, 2.5, false},
		{"float32", float32(0.5), 0.5, false},
		{"int", 3, 3, false},
		{"uint", uint(4), 4, false},
		{"uint64 max", uint64(math.MaxUint64), float64(uint64(math.MaxUint64)), false},
		{"json number", json.Number("1e3"), 1000, false},
		{"string", "19.99", 19.99, false},
		{"bad string", "abc", 0, true},
		{"NaN string", "NaN", 0, true},
		{"Inf", math.Inf(1), 0, true},
		{"bool", false, 0, true},
		{"slice", []int{1}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Coerce(FieldTypeFloat, tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Coerce(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Coerce(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCoerceBool(t *testing.T) {
	tests := []struct {
		input   any
		want    bool
		wantErr bool
	}{
		{true, true, false},
		{false, false, false},
		{"TRUE", true, false},
		{"off", false, false},
		{"y", true, false},
		{"0", false, false},
		{1, true, false},
		{int64(0), false, false},
		{2, false, true},
		{"maybe", false, true},
		{1.5, false, true},
	}

	for _, tt := range tests {
		got, err := Coerce(FieldTypeBool, tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("Coerce(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("Coerce(%v) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestCoerceString(t *testing.T) {
	if got, err := Coerce(FieldTypeString, "abc"); err != nil || got != "abc" {
		t.Errorf("Coerce(abc) = %v, %v", got, err)
	}
	if got, err := Coerce(FieldTypeString, []byte("xyz")); err != nil || got != "xyz" {
		t.Errorf("Coerce([]byte) = %v, %v", got, err)
	}
	for _, bad := range []any{1, 2.5, true, json.Number("3"), map[string]any{}} {
		if _, err := Coerce(FieldTypeString, bad); err == nil {
			t.Errorf("Coerce(%v) should fail", bad)
		}
	}
}

func TestCoerceEmail(t *testing.T) {
	valid := []string{"a@b.com", "first.last+tag@college.edu.in"}
	invalid := []string{"not-an-email", "", "a@", "@b.com", "Asha <asha@example.com>", "a b@c.com"}

	for _, s := range valid {
		if _, err := Coerce(FieldTypeEmail, s); err != nil {
			t.Errorf("Coerce(%q) = %v, want valid", s, err)
		}
	}
	for _, s := range invalid {
		if _, err := Coerce(FieldTypeEmail, s); err == nil {
			t.Errorf("Coerce(%q) should be invalid", s)
		}
	}
}

func TestCoerceTimestamp(t *testing.T) {
	utc := func(y int, m time.Month, d, h, min, s, ns int) time.Time {
		return time.Date(y, m, d, h, min, s, ns, time.UTC)
	}
	ist := time.FixedZone("", 5*3600+1800)

	tests := []struct {
		name    string
		input   any
		want    time.Time
		wantErr bool
	}{
		{"rfc3339 utc", "2025-02-14T10:00:00Z", utc(2025, 2, 14, 10, 0, 0, 0), false},
		{"rfc3339 offset", "2025-02-14T10:00:00+05:30", time.Date(2025, 2, 14, 10, 0, 0, 0, ist), false},
		{"rfc3339 fraction", "2025-02-14T10:00:00.250Z", utc(2025, 2, 14, 10, 0, 0, 250_000_000), false},
		{"rfc3339 lowercase", "2025-02-14t10:00:00z", utc(2025, 2, 14, 10, 0, 0, 0), false},
		{"space with offset", "2025-02-14 10:00:00+00:00", utc(2025, 2, 14, 10, 0, 0, 0), false},
		{"minutes with zulu", "2025-02-14T10:00Z", utc(2025, 2, 14, 10, 0, 0, 0), false},
		{"minutes with offset", "2025-02-14T12:00+02:00", utc(2025, 2, 14, 10, 0, 0, 0), false},
		{"minutes space with offset", "2025-02-14 10:00+00:00", utc(2025, 2, 14, 10, 0, 0, 0), false},
		{"naive", "2025-02-14T10:00:00", utc(2025, 2, 14, 10, 0, 0, 0), false},
		{"naive fraction", "2025-02-14T10:00:00.5", utc(2025, 2, 14, 10, 0, 0, 500_000_000), false},
		{"naive space", "2025-02-14 10:00:00", utc(2025, 2, 14, 10, 0, 0, 0), false},
		{"minutes only", "2025-02-14T10:30", utc(2025, 2, 14, 10, 30, 0, 0), false},
		{"date only", "2025-02-14", utc(2025, 2, 14, 0, 0, 0, 0), false},
		{"unix seconds", 1739527200, utc(2025, 2, 14, 10, 0, 0, 0), false},
		{"unix json number", json.Number("1739527200"), utc(2025, 2, 14, 10, 0, 0, 0), false},
		{"unix year 9999", int64(253402300799), utc(9999, 12, 31, 23, 59, 59, 0), false},
		{"unix too large", 1e300, time.Time{}, true},
		{"unix json number too large", json.Number("1e19"), time.Time{}, true},
		{"unix too small", -1e12, time.Time{}, true},
		{"unix NaN", math.NaN(), time.Time{}, true},
		{"time value", utc(2024, 1, 1, 0, 0, 0, 0), utc(2024, 1, 1, 0, 0, 0, 0), false},
		{"garbage", "not-a-date", time.Time{}, true},
		{"bad month", "2025-13-01", time.Time{}, true},
		{"bool", true, time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Coerce(FieldTypeTimestamp, tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Coerce(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			ts, ok := got.(time.Time)
			if !ok {
				t.Fatalf("Coerce(%v) returned %T", tt.input, got)
			}
			if !ts.Equal(tt.want) {
				t.Errorf("Coerce(%v) = %v, want %v", tt.input, ts, tt.want)
			}
		})
	}
}

func TestCoerceUnsupportedType(t *testing.T) {
	_, err := Coerce("blob", "x")
	var ce *CoercionError
	if !errors.As(err, &ce) {
		t.Fatalf("Coerce(blob) error = %v, want coercion error", err)
	}
	if ce.Type != "blob" {
		t.Errorf("Type = %q, want blob", ce.Type)
	}
}
