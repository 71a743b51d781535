// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Rect is an axis-aligned rectangle in screen coordinates.
type Rect struct {
	X int32 `json:"x" msgpack:"x"`
	Y int32 `json:"y" msgpack:"y"`
	W int32 `json:"w" msgpack:"w"`
	H int32 `json:"h" msgpack:"h"`
}

// IsValid reports whether the rectangle has non-negative dimensions.
func (r Rect) IsValid() bool {
	return r.W >= 0 && r.H >= 0
}

// IsEmpty reports whether the rectangle covers no pixels.
func (r Rect) IsEmpty() bool {
	return r.W <= 0 || r.H <= 0
}

// Area returns the number of pixels covered by the rectangle, zero for empty
// or invalid rectangles.
func (r Rect) Area() int64 {
	if r.IsEmpty() {
		return 0
	}
	return int64(r.W) * int64(r.H)
}

// Union returns the smallest rectangle containing both r and o. Empty
// rectangles do not contribute.
func (r Rect) Union(o Rect) Rect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}

	left := min(r.X, o.X)
	top := min(r.Y, o.Y)
	right := max(r.X+r.W, o.X+o.W)
	bottom := max(r.Y+r.H, o.Y+o.H)

	return Rect{X: left, Y: top, W: right - left, H: bottom - top}
}

// Transform is the rotation/flip applied to a layer when it is presented.
type Transform uint8

const (
	TransformNone Transform = iota
	TransformRotate90
	TransformRotate180
	TransformRotate270
	TransformFlipH
	TransformFlipV
)
