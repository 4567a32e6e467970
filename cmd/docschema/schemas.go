package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/artpar/docschema/core/convention"
	"github.com/artpar/docschema/core/registry"
	"github.com/artpar/docschema/core/schema"
)

var schemasCmd = &cobra.Command{
	Use:   "schemas",
	Short: "Inspect record schemas",
	Long: `Inspect the record schemas known to docschema.

Examples:
  docschema schemas list
  docschema schemas show product`,
}

var schemasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all schemas",
	RunE:  runSchemasList,
}

var schemasShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show the fields of a schema",
	Args:  cobra.ExactArgs(1),
	RunE:  runSchemasShow,
}

func init() {
	rootCmd.AddCommand(schemasCmd)

	schemasCmd.AddCommand(schemasListCmd)
	schemasCmd.AddCommand(schemasShowCmd)
}

func runSchemasList(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	printSchemaList(cmd.OutOrStdout(), reg)
	return nil
}

func runSchemasShow(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	d, ok := reg.Get(args[0])
	if !ok {
		return fmt.Errorf("unknown schema %q (known: %s)", args[0], strings.Join(reg.Collections(), ", "))
	}
	printSchema(cmd.OutOrStdout(), d)
	return nil
}

func printSchemaList(out io.Writer, reg *registry.Registry) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCOLLECTION\tFIELDS\tREQUIRED\tDESCRIPTION")
	fmt.Fprintln(w, "----\t----------\t------\t--------\t-----------")

	for _, d := range reg.List() {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
			d.Name(), d.Collection, len(d.Fields), len(d.Source.RequiredFields()), d.Source.Description)
	}

	w.Flush()
}

func printSchema(out io.Writer, d convention.Derived) {
	fmt.Fprintf(out, "Schema:      %s\n", d.Name())
	fmt.Fprintf(out, "Collection:  %s\n", d.Collection)
	if d.Source.Description != "" {
		fmt.Fprintf(out, "Description: %s\n", d.Source.Description)
	}
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FIELD\tTYPE\tREQUIRED\tNULLABLE\tDEFAULT\tCONSTRAINTS\tDESCRIPTION")
	fmt.Fprintln(w, "-----\t----\t--------\t--------\t-------\t-----------\t-----------")

	for _, f := range d.Fields {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			f.Name, f.Type, yesNo(f.Required), yesNo(f.Nullable), describeDefault(f),
			describeConstraints(f.Constraints), f.Description)
	}

	w.Flush()
}

func describeDefault(f schema.Field) string {
	if f.Required {
		return "-"
	}
	return f.Default.String()
}

func describeConstraints(cs []schema.Constraint) string {
	if len(cs) == 0 {
		return "-"
	}
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = fmt.Sprintf("%s=%v", c.Type, c.Value)
	}
	return strings.Join(parts, ",")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
