// Package pipeline runs one denoise job end to end: frame discovery,
// channel enumeration, channel and frame-range selection, job document
// build and write, and the denoiser launch.
package pipeline
