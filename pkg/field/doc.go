// Package field describes form fields and tracks their state across the
// events a host delivers: change, blur, and the submit-time invalid check.
//
// A Field pairs a Control with a validation.Constraint. A State feeds the
// field's value through the input-layer filters and the validation engine and
// decides which message is on display. A Form groups the states of one Set
// and maps server error payloads back onto field names.
package field
