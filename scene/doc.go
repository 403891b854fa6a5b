// Package scene defines the per-frame scene description: quads, the
// ordered Scene that holds them, and the device-pixel geometry and color
// types they are built from.
package scene
