package pointcloud

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"

	"github.com/evenwalser/ai-measurement/internal/geometry"
)

// Encode writes the cloud as ASCII PLY in builder order:
//
//	ply
//	format ascii 1.0
//	element vertex N
//	property float x|y|z
//	property uchar red|green|blue
//	end_header
//	x y z r g b      (N records)
func Encode(w io.Writer, cloud geometry.PointCloud) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "ply\nformat ascii 1.0\nelement vertex %d\n", len(cloud))
	bw.WriteString("property float x\nproperty float y\nproperty float z\n")
	bw.WriteString("property uchar red\nproperty uchar green\nproperty uchar blue\n")
	bw.WriteString("end_header\n")

	for _, p := range cloud {
		fmt.Fprintf(bw, "%g %g %g %d %d %d\n",
			p.Position.X, p.Position.Y, p.Position.Z,
			p.Color.R, p.Color.G, p.Color.B)
	}
	return bw.Flush()
}

// WriteFile encodes the cloud to the given path.
func WriteFile(path string, cloud geometry.PointCloud) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create point cloud file: %w", err)
	}
	defer f.Close()

	if err := Encode(f, cloud); err != nil {
		return fmt.Errorf("failed to write point cloud: %w", err)
	}
	return nil
}

// Decode reads an ASCII PLY cloud written by Encode (or compatible external
// tooling). Header properties beyond the supported x/y/z + red/green/blue
// subset are rejected rather than misread.
func Decode(r io.Reader) (geometry.PointCloud, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	count, err := readHeader(scanner)
	if err != nil {
		return nil, err
	}

	cloud := make(geometry.PointCloud, 0, count)
	for len(cloud) < count && scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 6 {
			return nil, fmt.Errorf("point record %d has %d fields, want 6", len(cloud), len(fields))
		}

		var pos [3]float64
		for i := 0; i < 3; i++ {
			pos[i], err = strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return nil, fmt.Errorf("point record %d: %w", len(cloud), err)
			}
		}
		var rgb [3]uint8
		for i := 0; i < 3; i++ {
			ch, err := strconv.ParseUint(fields[3+i], 10, 8)
			if err != nil {
				return nil, fmt.Errorf("point record %d: %w", len(cloud), err)
			}
			rgb[i] = uint8(ch)
		}

		cloud = append(cloud, geometry.Point3D{
			Position: r3.Vector{X: pos[0], Y: pos[1], Z: pos[2]},
			Color:    geometry.Color{R: rgb[0], G: rgb[1], B: rgb[2]},
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(cloud) != count {
		return nil, fmt.Errorf("header declared %d vertices, found %d", count, len(cloud))
	}
	return cloud, nil
}

// ReadFile decodes the cloud at the given path.
func ReadFile(path string) (geometry.PointCloud, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open point cloud file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

var supportedProperties = []string{
	"property float x",
	"property float y",
	"property float z",
	"property uchar red",
	"property uchar green",
	"property uchar blue",
}

// readHeader consumes the PLY header lines and returns the declared vertex
// count.
func readHeader(scanner *bufio.Scanner) (int, error) {
	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "ply" {
		return 0, fmt.Errorf("not a PLY stream")
	}

	count := -1
	props := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "end_header":
			if count < 0 {
				return 0, fmt.Errorf("PLY header missing vertex element")
			}
			if props != len(supportedProperties) {
				return 0, fmt.Errorf("PLY header declares %d properties, want %d", props, len(supportedProperties))
			}
			return count, nil
		case strings.HasPrefix(line, "format "):
			if line != "format ascii 1.0" {
				return 0, fmt.Errorf("unsupported PLY format %q", line)
			}
		case strings.HasPrefix(line, "element vertex "):
			n, err := strconv.Atoi(strings.TrimPrefix(line, "element vertex "))
			if err != nil || n < 0 {
				return 0, fmt.Errorf("bad vertex count in %q", line)
			}
			count = n
		case strings.HasPrefix(line, "element "):
			return 0, fmt.Errorf("unsupported PLY element %q", line)
		case strings.HasPrefix(line, "property "):
			if props >= len(supportedProperties) || line != supportedProperties[props] {
				return 0, fmt.Errorf("unsupported PLY property %q", line)
			}
			props++
		case strings.HasPrefix(line, "comment "):
			// ignored
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}
	return 0, fmt.Errorf("PLY header not terminated")
}
