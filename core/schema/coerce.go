package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// emailCheck is safe for concurrent use.
var emailCheck = validator.New()

var errNotWhole = errors.New("not a whole number")

// Unix seconds accepted as timestamps: years 0001 through 9999.
const (
	minUnixSeconds = -62135596800
	maxUnixSeconds = 253402300799
)

// offsetLayouts are tried after RFC 3339.
var offsetLayouts = []string{
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04Z07:00",
}

// naive timestamps carry no offset and are read as UTC.
var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// CoercionError reports a value that cannot be converted to a field type.
type CoercionError struct {
	Type    FieldType
	Message string
	Err     error
}

func (e *CoercionError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *CoercionError) Unwrap() error {
	return e.Err
}

// OverflowError reports a whole number that does not fit in an int64.
type OverflowError struct {
	Value float64
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("%v overflows int64", e.Value)
}

// Coerce converts a non-nil raw value to the Go type for t:
// string and email to string, int to int64, float to float64,
// bool to bool, timestamp to time.Time.
// Failures are *CoercionError.
func Coerce(t FieldType, value any) (any, error) {
	fail := func(msg string, err error) (any, error) {
		return nil, &CoercionError{Type: t, Message: msg, Err: err}
	}

	switch t {
	case FieldTypeString:
		if s, ok := asString(value); ok {
			return s, nil
		}
		return fail("must be a string", nil)

	case FieldTypeEmail:
		s, ok := asString(value)
		if !ok {
			return fail("must be a string", nil)
		}
		if err := emailCheck.Var(s, "email"); err != nil {
			return fail("must be a valid email address", err)
		}
		return s, nil

	case FieldTypeInt:
		n, err := asInt(value)
		if err != nil {
			return fail("must be an integer", err)
		}
		return n, nil

	case FieldTypeFloat:
		f, err := asFloat(value)
		if err != nil {
			return fail("must be a number", err)
		}
		return f, nil

	case FieldTypeBool:
		b, ok := asBool(value)
		if !ok {
			return fail("must be a boolean", nil)
		}
		return b, nil

	case FieldTypeTimestamp:
		ts, err := asTime(value)
		if err != nil {
			return fail("must be an ISO 8601 timestamp", err)
		}
		return ts, nil

	default:
		return fail(fmt.Sprintf("unsupported field type %q", t), nil)
	}
}

func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	default:
		return "", false
	}
}

func asInt(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		return uintToInt(uint64(n))
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		return uintToInt(n)
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		f, err := n.Float64()
		if err != nil {
			return 0, err
		}
		return floatToInt(f)
	case string:
		s := strings.TrimSpace(n)
		i, err := strconv.ParseInt(s, 10, 64)
		if errors.Is(err, strconv.ErrRange) {
			f, ferr := strconv.ParseFloat(s, 64)
			if ferr != nil {
				return 0, err
			}
			return floatToInt(f)
		}
		return i, err
	default:
		return 0, fmt.Errorf("cannot convert %T to integer", v)
	}
}

func uintToInt(n uint64) (int64, error) {
	if n > math.MaxInt64 {
		return 0, &OverflowError{Value: float64(n)}
	}
	return int64(n), nil
}

func floatToInt(f float64) (int64, error) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, errNotWhole
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, &OverflowError{Value: f}
	}
	return int64(f), nil
}

func asFloat(v any) (float64, error) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case json.Number:
		var err error
		if f, err = n.Float64(); err != nil {
			return 0, err
		}
	case string:
		var err error
		if f, err = strconv.ParseFloat(strings.TrimSpace(n), 64); err != nil {
			return 0, err
		}
	case bool:
		return 0, fmt.Errorf("cannot convert %T to number", v)
	default:
		i, err := asInt(v)
		var ov *OverflowError
		switch {
		case errors.As(err, &ov):
			f = ov.Value
		case err != nil:
			return 0, fmt.Errorf("cannot convert %T to number", v)
		default:
			f = float64(i)
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%v is not a finite number", f)
	}
	return f, nil
}

func asBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "t", "yes", "y", "on", "1":
			return true, true
		case "false", "f", "no", "n", "off", "0":
			return false, true
		}
		return false, false
	default:
		n, err := asInt(v)
		if err != nil {
			return false, false
		}
		switch n {
		case 1:
			return true, true
		case 0:
			return false, true
		}
		return false, false
	}
}

func asTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case *time.Time:
		if t == nil {
			return time.Time{}, errors.New("nil time")
		}
		return *t, nil
	case string:
		return parseTimestamp(strings.TrimSpace(t))
	case bool:
		return time.Time{}, fmt.Errorf("cannot convert %T to timestamp", v)
	default:
		// Numbers are Unix time in seconds.
		secs, err := asFloat(v)
		if err != nil {
			return time.Time{}, fmt.Errorf("cannot convert %T to timestamp", v)
		}
		if secs < minUnixSeconds || secs > maxUnixSeconds {
			return time.Time{}, fmt.Errorf("unix time %v is outside years 0001-9999", secs)
		}
		whole, frac := math.Modf(secs)
		return time.Unix(int64(whole), int64(frac*1e9)).UTC(), nil
	}
}

func parseTimestamp(s string) (time.Time, error) {
	// RFC 3339 allows lowercase t and z.
	s = strings.ToUpper(s)
	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return ts, nil
	}
	for _, layout := range offsetLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	for _, layout := range naiveLayouts {
		if ts, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
