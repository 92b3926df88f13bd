// Package geometry provides the pure geometric algorithms of the ink
// pipeline: the capture-surface to page-native coordinate transform,
// Douglas-Peucker point reduction, and Catmull-Rom smoothing.
//
// All functions are stateless and operate on domain.Point sequences.
package geometry
