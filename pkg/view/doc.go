// Package view hosts the interactive presentation layer for force layouts:
// a pan/zoom viewport transform, a device-pixel-ratio aware raster
// renderer, point hit-testing, and keyboard directional navigation.
//
// The package is deliberately single-threaded. A View owns a simulation
// and advances it one Step per host frame; every input event (mouse,
// keyboard, resize, data refresh) mutates state synchronously and marks
// the view dirty, and the host draws at most one frame per scheduler
// tick. There are no goroutines and no locks here; hosts that need
// concurrency serialize onto their own event loop first.
//
// Coordinates come in three spaces. Model space is what the simulation
// computes. Logical pixels are model space pushed through the viewport
// Transform. Device pixels are logical pixels scaled by the pixel ratio,
// which only the Renderer ever sees.
package view
