// Package job builds the JSON job document consumed by the RenderMan
// denoise_batch tool and writes it to disk.
//
// [Builder.Build] is a pure transformation from a frame path template and an
// ordered channel list to a [Document]; it performs no I/O. [Write] is the
// only function here that touches the filesystem.
package job
