// Package keyfile generates, stores and opens mirror field keys.
//
// A key is the raw field data consumed by mirrorfield.Load: GridSize² mirror
// symbols followed by the perimeter alphabet. On disk it is stored as a single
// line of padded standard base64.
package keyfile
