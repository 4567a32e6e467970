/*
Package schema defines the types for declarative record schemas.

A schema (Definition) is a named, ordered list of field specifications.
Schemas are declared as data and interpreted by one generic validator, so
adding a record kind never requires new Go types.

# Schema Definition

A minimal schema file in YAML:

	schemas:
	  - name: Inquiry
	    fields:
	      - { name: name,    type: string, required: true }
	      - { name: email,   type: email,  required: true }
	      - { name: phone,   type: string, nullable: true }
	      - { name: source,  type: string, nullable: true, default: website }

# Field Types

  - string:    Text value
  - int:       Integer value
  - float:     Floating-point value
  - bool:      Boolean value
  - timestamp: Date/time value (RFC 3339)
  - email:     Email address (validated)

# Requiredness and Defaults

A required field must be supplied and cannot declare a default. An optional
field takes its default when absent; an optional field without a default
must be nullable, and then defaults to null. Defaults are carried as
Optional[any] so "no default" and "default" stay distinct.

# Constraints

	constraints:
	  - { type: min, value: 0 }
	  - { type: max, value: 120 }

min and max are inclusive and apply to numeric fields only. min_length,
max_length and pattern apply to string and email fields. one_of takes a list.

# Parsing

	defs, err := schema.ParseFile("schemas/college.yaml")
	defs, err := schema.ParseDir("schemas/")

All definitions are checked on parse. Invalid definitions return an error.
*/
package schema
