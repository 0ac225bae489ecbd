// Package validation exposes the constraint engine over HTTP so a browser can
// ask the server for the same verdict it would reach on submit.
//
// POST {RoutePath} with
//
//	{"value":"ab","constraint":{"required":true,"minLength":3},"locale":"es"}
//
// answers with a verdict such as {"valid":false,"message":"...","rule":"minLength"}.
// Set "checked" for checkbox fields or "count" for multi-value fields instead
// of "value".
package validation
