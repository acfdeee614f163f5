// Package utils contains small shared helpers: the single-shot HTTP POST used
// by the client façade, and string helpers for safe previews of payloads in
// error messages and logs.
package utils
