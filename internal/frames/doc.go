// Package frames locates a rendered frame sequence inside a directory and
// validates the frame range handed to the denoiser.
//
// A sequence is recognized by its first file whose name ends in four digits
// followed by ".exr" (shot.1001.exr). The digits are replaced with "####" to
// form the template denoise_batch expands per frame.
package frames
