// Package denoise builds and runs the denoise_batch command line for a
// written job file.
//
// The denoiser is launched once and waited on. Its exit status is reported
// to the caller but never acted upon: there is no retry.
package denoise
