package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"
	"unicode/utf8"

	"github.com/artpar/docschema/core/convention"
	"github.com/artpar/docschema/core/validation"
)

// TableFormatter formats output as aligned text tables.
type TableFormatter struct{}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter() *TableFormatter {
	return &TableFormatter{}
}

// Name returns the formatter name.
func (f *TableFormatter) Name() string {
	return "table"
}

// Description returns the formatter description.
func (f *TableFormatter) Description() string {
	return "Aligned text table output"
}

// FormatRecords formats records as a table, one row per record.
func (f *TableFormatter) FormatRecords(w io.Writer, d convention.Derived, records []validation.Record, opts FormatOptions) error {
	if len(records) == 0 {
		fmt.Fprintln(w, "No records.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	columns := resolveColumns(d, opts.Columns)

	if !opts.NoHeader {
		headers := make([]string, len(columns))
		for i, col := range columns {
			headers[i] = strings.ToUpper(col)
		}
		fmt.Fprintln(tw, strings.Join(headers, "\t"))
	}

	for _, rec := range records {
		values := make([]string, len(columns))
		for i, col := range columns {
			v, _ := rec.Get(col)
			values[i] = f.formatValue(v, opts.MaxWidth)
		}
		fmt.Fprintln(tw, strings.Join(values, "\t"))
	}

	return tw.Flush()
}

// FormatErrors formats field failures as a table.
func (f *TableFormatter) FormatErrors(w io.Writer, errs []*validation.FieldError, opts FormatOptions) error {
	if len(errs) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if !opts.NoHeader {
		fmt.Fprintln(tw, "FIELD\tKIND\tMESSAGE")
	}
	for _, fe := range errs {
		field := fe.Field
		if field == "" {
			field = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", field, fe.Kind, fe.Message)
	}
	return tw.Flush()
}

// formatValue formats a value for display.
func (f *TableFormatter) formatValue(val any, maxWidth int) string {
	if val == nil {
		return "-"
	}

	var str string
	switch v := val.(type) {
	case string:
		str = v
	case bool:
		if v {
			str = "yes"
		} else {
			str = "no"
		}
	case int64:
		str = strconv.FormatInt(v, 10)
	case float64:
		str = strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		str = v.Format(time.RFC3339)
	default:
		b, _ := json.Marshal(v)
		str = string(b)
	}

	// Truncate by runes if needed
	if maxWidth > 3 && utf8.RuneCountInString(str) > maxWidth {
		r := []rune(str)
		str = string(r[:maxWidth-3]) + "..."
	}

	return str
}

func init() {
	if err := Register(NewTableFormatter()); err != nil {
		fmt.Printf("failed to register table formatter: %v\n", err)
	}
}
