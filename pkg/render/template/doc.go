// Package template defines the template engine seam renderers depend on.
// The gotemplate subpackage implements it with pongo2.
package template
