// Package types defines the entity types, patch types, enumerations,
// configuration, and standard errors for the homestead data layer.
//
// Every entity carries an opaque string ID and CreatedAt/UpdatedAt
// timestamps. Patch types carry pointer fields: a nil field is left alone by
// Update, a non-nil field is written. For optional references an empty
// string clears the reference, and for optional dates the zero time clears
// the date.
package types
