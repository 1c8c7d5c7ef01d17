package pointcloud

import (
	"image"
	"runtime"
	"sync"

	"github.com/evenwalser/ai-measurement/internal/geometry"
)

// Build back-projects a depth map into a colored point cloud.
//
// For each pixel (u,v) with a strictly-positive depth sample, the pinhole
// model yields x=(u-cx)·d/fx, y=(v-cy)·d/fy, z=d. Color is sampled from img
// at (u,v) when img is non-nil and the pixel is in bounds; otherwise the
// point gets the default gray. Pixels without valid depth are dropped, so
// the output length equals depth.ValidCount().
func Build(depth *geometry.DepthMap, in geometry.Intrinsics, img image.Image) (geometry.PointCloud, error) {
	if err := depth.Validate(); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	cloud := make(geometry.PointCloud, 0, depth.ValidCount())
	for v := 0; v < depth.Height; v++ {
		cloud = appendRow(cloud, depth, in, img, v)
	}
	return cloud, nil
}

// BuildParallel is Build with the per-row work spread across a bounded pool
// of workers. Rows are independent, so each worker back-projects whole rows
// into a per-row slot; the slots are concatenated afterward, which keeps the
// row-major output ordering identical to Build.
func BuildParallel(depth *geometry.DepthMap, in geometry.Intrinsics, img image.Image, workers int) (geometry.PointCloud, error) {
	if err := depth.Validate(); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > depth.Height {
		workers = depth.Height
	}

	rows := make([]geometry.PointCloud, depth.Height)
	next := make(chan int, depth.Height)
	for v := 0; v < depth.Height; v++ {
		next <- v
	}
	close(next)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for v := range next {
				rows[v] = appendRow(nil, depth, in, img, v)
			}
		}()
	}
	wg.Wait()

	cloud := make(geometry.PointCloud, 0, depth.ValidCount())
	for _, row := range rows {
		cloud = append(cloud, row...)
	}
	return cloud, nil
}

// appendRow back-projects one depth row, appending valid points to dst.
func appendRow(dst geometry.PointCloud, depth *geometry.DepthMap, in geometry.Intrinsics, img image.Image, v int) geometry.PointCloud {
	for u := 0; u < depth.Width; u++ {
		d := depth.At(u, v)
		if d <= 0 {
			continue
		}
		dst = append(dst, geometry.Point3D{
			Position: in.BackProject(u, v, d),
			Color:    colorAt(img, u, v),
		})
	}
	return dst
}

// colorAt samples the 8-bit RGB color at (u,v), or the default gray when the
// image is absent or the pixel falls outside it.
func colorAt(img image.Image, u, v int) geometry.Color {
	if img == nil {
		return geometry.DefaultPointColor
	}
	b := img.Bounds()
	x, y := b.Min.X+u, b.Min.Y+v
	if x >= b.Max.X || y >= b.Max.Y {
		return geometry.DefaultPointColor
	}
	r, g, bl, _ := img.At(x, y).RGBA()
	return geometry.Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8)}
}
