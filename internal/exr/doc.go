// Package exr reads the channel list out of an OpenEXR header.
//
// Only the header is parsed: the magic number, the version flags, and the
// attribute table of every part. Pixel data is never touched, so reading a
// multi-gigabyte deep file costs the same as reading a thumbnail.
//
// Header layout (all integers little-endian):
//
//	magic    int32   20000630
//	version  int32   low byte = format version, upper bits = flags
//	header   { name\0 type\0 size:int32 value[size] }* \0
//
// Multipart files repeat the header block once per part and terminate the
// list with an extra empty header.
package exr
