/*
Package vstools provides shared types, enums and convenience helpers for
working with video clip and frame objects: color range and chroma location
handling, value scaling between bit depths, typed frame-property access and
clip normalization.

All operations are pure functions or read-only accessors over caller-supplied
frames; nothing here mutates its input or holds state between calls, so every
function is safe to use concurrently without coordination.
*/
package vstools
