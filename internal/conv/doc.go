// Package conv converts between integer types with bounds checks.
//
// Use it for values that come from disk or from the caller, such as blob
// sizes recorded in a manifest. Conversions that are safe by construction
// use plain casts.
package conv
