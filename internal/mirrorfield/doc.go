// Package mirrorfield implements the mirror field cipher.
//
// A Field holds an N×N grid of mirrors and a perimeter of 4N distinct bytes.
// Crypt maps one byte to another by firing a ray from the slot holding the
// input byte and reading the byte at the slot where the ray leaves the grid.
// Every mirror the ray touches spins to its next orientation and the two
// slots involved are rolled to new positions, so equal input bytes rarely
// produce equal output bytes.
//
// The same operation decrypts: two fields that start from identical state
// and see the same sequence of calls stay in lockstep, and each call undoes
// the other's substitution.
//
// A Field is not safe for concurrent use. Use Clone to obtain independent
// sessions from one loaded key.
package mirrorfield
