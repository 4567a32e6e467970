package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/artpar/docschema/adapters/clock"
	"github.com/artpar/docschema/adapters/memory"
	"github.com/artpar/docschema/adapters/metrics"
	"github.com/artpar/docschema/adapters/sink"
	"github.com/artpar/docschema/app"
	"github.com/artpar/docschema/core/formatter"
	"github.com/artpar/docschema/core/validation"
	"github.com/artpar/docschema/ports"
)

var validateCmd = &cobra.Command{
	Use:   "validate <schema>",
	Short: "Validate documents against a schema",
	Long: `Validate documents against a schema.

Input is a JSON object, a JSON array of objects, or one or more YAML
documents. Valid records are printed to stdout as JSON lines:

  {"collection":"user","record":{...}}

With --output table, json or yaml the valid records are collected and
printed once as a single document instead, and failures are rendered
to stderr in the same format.

Failures are printed to stderr and the command exits non-zero.

Examples:
  docschema validate user --file users.json
  echo '{"title":"Pen","price":1.5,"category":"office"}' | docschema validate product
  docschema validate event --file events.yaml --all --strict
  docschema validate user --file users.json --output table --columns name,email`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

var (
	validateFile    string
	validateAll     bool
	validateStrict  bool
	validateMetrics bool
	validateOutput  string
	validateColumns []string
	validateNoHead  bool
	validateCompact bool
	validateWidth   int
)

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateFile, "file", "f", "-", "input file (- for stdin)")
	validateCmd.Flags().BoolVar(&validateAll, "all", false, "report every field failure instead of the first")
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "reject fields the schema does not declare")
	validateCmd.Flags().BoolVar(&validateMetrics, "metrics", false, "print Prometheus metrics for the run to stderr")
	validateCmd.Flags().StringVarP(&validateOutput, "output", "o", "jsonl", "output format: jsonl, "+strings.Join(formatter.List(), ", "))
	validateCmd.Flags().StringSliceVar(&validateColumns, "columns", nil, "fields to print (table, json and yaml output)")
	validateCmd.Flags().BoolVar(&validateNoHead, "no-header", false, "disable header row (table output)")
	validateCmd.Flags().BoolVar(&validateCompact, "compact", false, "compact output (json output)")
	validateCmd.Flags().IntVar(&validateWidth, "max-width", 0, "truncate table values to this many characters (0 = no limit)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	d, ok := reg.Get(args[0])
	if !ok {
		return fmt.Errorf("unknown schema %q (known: %s)", args[0], strings.Join(reg.Collections(), ", "))
	}

	var (
		records   ports.RecordSink
		collected *memory.RecordSink
		format    formatter.Formatter
	)
	if validateOutput == "jsonl" {
		records = sink.NewJSONLines(cmd.OutOrStdout())
	} else {
		f, ok := formatter.Get(validateOutput)
		if !ok {
			return fmt.Errorf("unknown output format %q (known: jsonl, %s)", validateOutput, strings.Join(formatter.List(), ", "))
		}
		format = f
		collected = memory.NewRecordSink()
		records = collected
	}

	in, closeIn, err := openInput(cmd)
	if err != nil {
		return err
	}
	defer closeIn()

	inputs, err := decodeInputs(in)
	if err != nil {
		return err
	}

	var (
		observer ports.ValidationMetrics = metrics.Nop{}
		promReg  *prometheus.Registry
	)
	if validateMetrics || cfg.Metrics.Enabled {
		promReg = prometheus.NewRegistry()
		observer = metrics.NewWithRegistry(promReg)
	}

	validator := validation.New(reg, validation.Options{
		RejectUnknown: validateStrict || cfg.Validation.RejectUnknown(),
	})

	svc := app.NewIntakeService(app.IntakeDeps{
		Validator: validator,
		Sink:      records,
		Metrics:   observer,
		Clock:     clock.Real{},
		Logger:    logger,
	}, app.IntakeConfig{
		CollectAll:      validateAll || cfg.Validation.CollectAll(),
		StopOnSinkError: true,
	})

	batch, err := svc.SubmitBatch(cmd.Context(), args[0], inputs)

	if format == nil {
		reportFailures(cmd.ErrOrStderr(), batch)
	} else {
		opts := formatter.FormatOptions{
			Columns:  validateColumns,
			NoHeader: validateNoHead,
			Compact:  validateCompact,
			MaxWidth: validateWidth,
		}
		if ferr := format.FormatRecords(cmd.OutOrStdout(), d, collected.List(d.Collection), opts); ferr != nil {
			return fmt.Errorf("format records: %w", ferr)
		}
		if fes := batchFieldErrors(batch); len(fes) > 0 {
			if ferr := format.FormatErrors(cmd.ErrOrStderr(), fes, opts); ferr != nil {
				return fmt.Errorf("format errors: %w", ferr)
			}
		}
	}

	if promReg != nil {
		if werr := writeMetrics(cmd.ErrOrStderr(), promReg); werr != nil {
			logger.Warn().Err(werr).Msg("metrics dump failed")
		}
	}

	if err != nil {
		return err
	}
	if batch.Invalid > 0 {
		return errRejected
	}
	return nil
}

func openInput(cmd *cobra.Command) (io.Reader, func(), error) {
	if validateFile == "" || validateFile == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(validateFile)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	return f, func() { f.Close() }, nil
}

// reportFailures prints one line per field failure.
func reportFailures(w io.Writer, batch app.BatchResult) {
	for _, res := range batch.Failed() {
		fes := validation.FieldErrors(res.Err)
		if len(fes) == 0 {
			fmt.Fprintf(w, "record %d: %v\n", res.Index, res.Err)
			continue
		}
		for _, fe := range fes {
			fmt.Fprintf(w, "record %d: %s [%s]\n", res.Index, fe.Error(), fe.Kind)
		}
	}
	if batch.Invalid > 0 {
		fmt.Fprintf(w, "%d of %d records rejected\n", batch.Invalid, len(batch.Results))
	}
}

// batchFieldErrors flattens every failure in the batch, in input order.
func batchFieldErrors(batch app.BatchResult) []*validation.FieldError {
	var out []*validation.FieldError
	for _, res := range batch.Failed() {
		out = append(out, validation.FieldErrors(res.Err)...)
	}
	return out
}

func writeMetrics(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("encode metrics: %w", err)
		}
	}
	return nil
}
