// Package model defines the geometry types a gesture is made of.
//
// A Gesture is an ordered sequence of Strokes, each an ordered sequence
// of timestamped 2-D Points. Gestures carry a 64-bit identifier that is
// unique within a process and never reused; everything else is plain
// value data. Feature extraction and persistence live in their own
// packages and only consume these types.
package model
