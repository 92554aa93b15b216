// Package aov classifies render output channels (AOVs) and pairs each one
// with the variance channel the denoiser reads alongside it.
//
// The pairing comes from a fixed, ordered rule table. [DefaultTable] builds
// it once; a [Classifier] holds the table and answers lookups without
// touching any shared state, so a single classifier can be used from any
// number of goroutines.
package aov
