package convention

import (
	"testing"

	"github.com/artpar/docschema/core/schema"
)

func TestCollection(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"User", "user"},
		{"Product", "product"},
		{"Inquiry", "inquiry"},
		{"user", "user"},
		{"  Event ", "event"},
		{"BlogPost", "blogpost"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Collection(tt.input); got != tt.expected {
				t.Errorf("Collection(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDerive(t *testing.T) {
	def := schema.Definition{
		Name: "Event",
		Fields: []schema.Field{
			{Name: "title", Type: schema.FieldTypeString, Required: true},
			{Name: "date", Type: schema.FieldTypeTimestamp, Required: true},
			{Name: "image_url", Type: schema.FieldTypeString, Nullable: true},
		},
	}

	d := Derive(def)

	if d.Collection != "event" {
		t.Errorf("Collection = %q, want %q", d.Collection, "event")
	}
	if d.Name() != "Event" {
		t.Errorf("Name() = %q, want %q", d.Name(), "Event")
	}
	if len(d.Fields) != 3 {
		t.Fatalf("Fields = %d, want 3", len(d.Fields))
	}
	if d.Fields[1].Name != "date" {
		t.Errorf("Fields[1] = %q, want date", d.Fields[1].Name)
	}

	if !d.HasField("image_url") {
		t.Error("HasField(image_url) = false")
	}
	if d.HasField("location") {
		t.Error("HasField(location) = true")
	}

	f, ok := d.Field("date")
	if !ok || f.Type != schema.FieldTypeTimestamp {
		t.Errorf("Field(date) = %+v, %v", f, ok)
	}
	if _, ok := d.Field("nope"); ok {
		t.Error("Field(nope) should not be found")
	}
}

func TestDerive_CopiesFields(t *testing.T) {
	def := schema.Definition{
		Name:   "Note",
		Fields: []schema.Field{{Name: "body", Type: schema.FieldTypeString, Required: true}},
	}

	d := Derive(def)
	def.Fields[0].Name = "changed"

	if d.Fields[0].Name != "body" {
		t.Errorf("derived fields share storage with source: got %q", d.Fields[0].Name)
	}
}
