// Package render draws detection results back onto plan images for
// visual verification: polygon outlines, door-gap markers, spanning-wall
// centerlines, and optional text labels.
//
// Rendering is strictly a debugging aid; nothing in the detection
// pipeline depends on this package.
package render
