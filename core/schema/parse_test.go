package schema

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	yaml := `
schemas:
  - name: User
    description: Users collection schema
    fields:
      - { name: name, type: string, required: true, description: Full name }
      - name: age
        type: int
        nullable: true
        description: Age in years
        constraints:
          - { type: min, value: 0 }
          - { type: max, value: 120 }
      - { name: is_active, type: bool, default: true }
`

	defs, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(defs) != 1 {
		t.Fatalf("got %d schemas, want 1", len(defs))
	}

	def := defs[0]
	if def.Name != "User" {
		t.Errorf("Name = %q, want %q", def.Name, "User")
	}

	if got := def.FieldNames(); strings.Join(got, ",") != "name,age,is_active" {
		t.Errorf("field order = %v, want name,age,is_active", got)
	}

	age, _ := def.Field("age")
	if age.Default.IsSet() {
		t.Error("age default should be unset")
	}
	min, max := age.Bounds()
	if min == nil || max == nil || *min != 0 || *max != 120 {
		t.Errorf("age bounds = %v..%v, want 0..120", min, max)
	}

	active, _ := def.Field("is_active")
	if v, ok := active.Default.Get(); !ok || v != true {
		t.Errorf("is_active default = %v, %v; want true", v, ok)
	}

	name, _ := def.Field("name")
	if name.Description != "Full name" {
		t.Errorf("Description = %q, want %q", name.Description, "Full name")
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "valid minimal",
			yaml: `
schemas:
  - name: Note
    fields:
      - { name: body, type: string, required: true }
`,
		},
		{
			name:    "no schemas",
			yaml:    `schemas: []`,
			wantErr: "no schemas declared",
		},
		{
			name: "missing schema name",
			yaml: `
schemas:
  - fields:
      - { name: body, type: string, required: true }
`,
			wantErr: "not a valid identifier",
		},
		{
			name: "no fields",
			yaml: `
schemas:
  - name: Note
    fields: []
`,
			wantErr: "at least one field",
		},
		{
			name: "unknown type",
			yaml: `
schemas:
  - name: Note
    fields:
      - { name: body, type: text, required: true }
`,
			wantErr: `unknown type "text"`,
		},
		{
			name: "duplicate field",
			yaml: `
schemas:
  - name: Note
    fields:
      - { name: body, type: string, required: true }
      - { name: body, type: string, nullable: true }
`,
			wantErr: "declared more than once",
		},
		{
			name: "required with default",
			yaml: `
schemas:
  - name: Note
    fields:
      - { name: body, type: string, required: true, default: x }
`,
			wantErr: "cannot declare a default",
		},
		{
			name: "required and nullable",
			yaml: `
schemas:
  - name: Note
    fields:
      - { name: body, type: string, required: true, nullable: true }
`,
			wantErr: "cannot be nullable",
		},
		{
			name: "optional non-nullable without default",
			yaml: `
schemas:
  - name: Note
    fields:
      - { name: pinned, type: bool }
`,
			wantErr: "needs a default",
		},
		{
			name: "range on string field",
			yaml: `
schemas:
  - name: Note
    fields:
      - name: body
        type: string
        required: true
        constraints: [{ type: min, value: 1 }]
`,
			wantErr: "requires a numeric field",
		},
		{
			name: "min above max",
			yaml: `
schemas:
  - name: Note
    fields:
      - name: stars
        type: int
        required: true
        constraints: [{ type: min, value: 5 }, { type: max, value: 1 }]
`,
			wantErr: "exceeds max",
		},
		{
			name: "bad pattern",
			yaml: `
schemas:
  - name: Note
    fields:
      - name: body
        type: string
        required: true
        constraints: [{ type: pattern, value: "(" }]
`,
			wantErr: "invalid pattern",
		},
		{
			name: "empty one_of",
			yaml: `
schemas:
  - name: Note
    fields:
      - name: body
        type: string
        required: true
        constraints: [{ type: one_of, value: [] }]
`,
			wantErr: "non-empty list",
		},
		{
			name: "unknown constraint",
			yaml: `
schemas:
  - name: Note
    fields:
      - name: body
        type: string
        required: true
        constraints: [{ type: not_empty }]
`,
			wantErr: `unknown constraint "not_empty"`,
		},
		{
			name: "default wrong type",
			yaml: `
schemas:
  - name: Note
    fields:
      - { name: pinned, type: bool, default: "maybe" }
`,
			wantErr: "default must be a boolean",
		},
		{
			name: "default accepted by input coercion",
			yaml: `
schemas:
  - name: Note
    fields:
      - { name: pinned, type: bool, default: "yes" }
      - { name: due, type: timestamp, default: "2025-01-01T09:00Z" }
`,
		},
		{
			name: "timestamp default unparsable",
			yaml: `
schemas:
  - name: Note
    fields:
      - { name: due, type: timestamp, default: "tomorrow" }
`,
			wantErr: "default must be an ISO 8601 timestamp",
		},
		{
			name: "email default malformed",
			yaml: `
schemas:
  - name: Note
    fields:
      - { name: reply_to, type: email, default: "nobody" }
`,
			wantErr: "default must be a valid email address",
		},
		{
			name: "default violates own range",
			yaml: `
schemas:
  - name: Note
    fields:
      - name: stars
        type: int
        default: 9
        constraints: [{ type: max, value: 5 }]
`,
			wantErr: "violates max",
		},
		{
			name: "invalid yaml",
			yaml: "schemas: [",
			wantErr: "parse yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestParseDir(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"a.yaml": `
schemas:
  - name: Note
    fields:
      - { name: body, type: string, required: true }
`,
		"nested/b.yml": `
schemas:
  - name: Tag
    fields:
      - { name: label, type: string, required: true }
`,
		"README.md": "ignored",
	}

	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	defs, err := ParseDir(dir)
	if err != nil {
		t.Fatalf("ParseDir failed: %v", err)
	}

	if len(defs) != 2 {
		t.Fatalf("got %d schemas, want 2", len(defs))
	}

	names := map[string]bool{}
	for _, d := range defs {
		names[d.Name] = true
	}
	if !names["Note"] || !names["Tag"] {
		t.Errorf("schemas = %v, want Note and Tag", names)
	}
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestIsValidIdentifier(t *testing.T) {
	valid := []string{"user", "User", "_x", "brochure_url", "a1"}
	invalid := []string{"", "1a", "has-dash", "sp ace"}

	for _, s := range valid {
		if !isValidIdentifier(s) {
			t.Errorf("isValidIdentifier(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if isValidIdentifier(s) {
			t.Errorf("isValidIdentifier(%q) = true, want false", s)
		}
	}
}
