// Package core defines the shared types used across scenebrush: generation
// requests and results, provider configuration, resolution tiers, and the
// error taxonomy that every provider implementation normalizes to.
//
// The types here are plain data. Nothing in core performs I/O; providers,
// the dispatcher, and the runner compose these values and return them to
// the host layer.
package core
