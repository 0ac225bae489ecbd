// Package validation implements the field validation contract shared by every
// input-style control: a declarative Constraint, a Verdict carrying at most one
// message, and the input-layer helpers (Truncate, FilterNumeric) hosts apply
// while a value is typed.
//
// Checks run in a fixed order and short-circuit on the first failure:
//
//	required -> minLength -> maxLength -> email
//
// Validation never returns an error. A malformed constraint set can be
// detected ahead of time with Constraint.Check.
package validation
