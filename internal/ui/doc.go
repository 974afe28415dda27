// Package ui hosts a menu in a Bubble Tea program.
//
// The Model renders the trigger and, while expanded, the list of items.
// Each is backed by a surface.Node whose hit test is the bubblezone region
// the node was last rendered into, so pointer events resolve against what
// is on screen. Keys go to the focused node; mouse events go to every node
// and each behavior decides whether the point concerns it.
//
// A confirmed selection is delivered as a SelectedMsg.
package ui
