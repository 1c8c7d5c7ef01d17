package detect

import (
	"image"
	"image/color"
)

// component is a connected group of foreground pixels with its bounding box.
type component struct {
	area                   int
	minX, minY, maxX, maxY int
}

func (c component) width() int  { return c.maxX - c.minX + 1 }
func (c component) height() int { return c.maxY - c.minY + 1 }

// findComponents groups foreground pixels of a binary mask into 8-connected
// components using an iterative flood fill, returning one entry per
// component at or above minArea.
func findComponents(mask *image.Gray, minArea int) []component {
	b := mask.Bounds()
	width, height := b.Dx(), b.Dy()

	visited := make([]bool, width*height)
	foreground := func(x, y int) bool {
		return mask.GrayAt(b.Min.X+x, b.Min.Y+y).Y >= 128
	}

	var components []component
	var stack []image.Point

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if visited[y*width+x] || !foreground(x, y) {
				continue
			}

			comp := component{minX: x, minY: y, maxX: x, maxY: y}
			stack = append(stack[:0], image.Point{X: x, Y: y})

			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]

				if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
					continue
				}
				if visited[p.Y*width+p.X] || !foreground(p.X, p.Y) {
					continue
				}
				visited[p.Y*width+p.X] = true

				comp.area++
				if p.X < comp.minX {
					comp.minX = p.X
				}
				if p.X > comp.maxX {
					comp.maxX = p.X
				}
				if p.Y < comp.minY {
					comp.minY = p.Y
				}
				if p.Y > comp.maxY {
					comp.maxY = p.Y
				}

				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if dx == 0 && dy == 0 {
							continue
						}
						stack = append(stack, image.Point{X: p.X + dx, Y: p.Y + dy})
					}
				}
			}

			if comp.area >= minArea {
				components = append(components, comp)
			}
		}
	}
	return components
}

// largestComponent returns the component with the greatest pixel area.
func largestComponent(components []component) (component, bool) {
	if len(components) == 0 {
		return component{}, false
	}
	best := components[0]
	for _, c := range components[1:] {
		if c.area > best.area {
			best = c
		}
	}
	return best, true
}

// edgeMask marks pixels whose right or down neighbor differs in luminance by
// more than threshold. Border pixels are left unmarked.
func edgeMask(img image.Image, threshold float64) *image.Gray {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	mask := image.NewGray(image.Rect(0, 0, width, height))

	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			c := grayValue(img, b.Min.X+x, b.Min.Y+y)
			right := grayValue(img, b.Min.X+x+1, b.Min.Y+y)
			down := grayValue(img, b.Min.X+x, b.Min.Y+y+1)

			if abs(c-right) > threshold || abs(c-down) > threshold {
				mask.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return mask
}

// grayValue converts a pixel to luminance using ITU-R BT.601 weights.
func grayValue(img image.Image, x, y int) float64 {
	r, g, b, _ := img.At(x, y).RGBA()
	return float64(r>>8)*0.299 + float64(g>>8)*0.587 + float64(b>>8)*0.114
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
