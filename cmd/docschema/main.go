// Package main is the entry point for docschema, a command-line tool that
// checks documents against the built-in record schemas.
package main

func main() {
	Execute()
}
