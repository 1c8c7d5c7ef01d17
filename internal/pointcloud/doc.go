// Package pointcloud reconstructs colored 3-D point sets from depth maps and
// pinhole camera intrinsics, and reads/writes them as ASCII PLY.
//
// # Ordering
//
// Builders emit points in row-major pixel scan order, skipping pixels with
// non-positive depth. The parallel builder preserves this ordering; the PLY
// codec preserves it on disk. External tooling consumes clouds in builder
// order, so ordering is part of the contract, not an implementation detail.
//
// # PLY Subset
//
// Only the subset needed by the layout-inference tooling is supported:
// format ascii 1.0, a single vertex element with float x/y/z and uchar
// red/green/blue properties.
package pointcloud
