// Package geom is the small geometry kernel used by the prime tower engine.
//
// Coordinates are integer micrometres. The kernel provides the primitives the
// tower needs and nothing more: circles, spoked wheels, concentric outsets and
// insets, evenly spread boundary points, inward moves and bounding boxes.
// There is no general polygon clipping here; callers that need boolean
// operations supply their own.
package geom
