// Package toast provides an explicit notification service: one visible toast
// at a time, replaced by each Show and dismissed after its duration.
package toast
