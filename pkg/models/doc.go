// Package models contains the request and response payloads of the payments API.
//
// Fields that accept more than one shape are unions (see package unions).
// Their registrations, constructors and accessors are generated from
// variants.yml; the order alternatives are listed in there is the order they
// are tried when decoding.
package models

//go:generate go run ../../cmd/paykit generate variants --variants variants.yml --output variants_gen.go
