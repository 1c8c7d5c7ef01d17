package detect

import (
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/segment"

	"github.com/evenwalser/ai-measurement/internal/calibration"
)

// AnkleVisibilityThreshold is the minimum landmark visibility a
// landmark-based backend must require before using an ankle point for the
// head-to-ankle height measurement.
const AnkleVisibilityThreshold = 0.5

// ContourPersonDetector estimates a person's pixel height without a pose
// model: blur, binary-threshold, then take the bounding-box height of the
// largest foreground component. It is the fallback tier behind
// landmark-based detection and assumes the person is the dominant bright
// shape against a dark background.
type ContourPersonDetector struct {
	// BlurRadius smooths sensor noise before thresholding.
	BlurRadius float64
	// Threshold separates foreground from background luminance.
	Threshold uint8
	// MinArea discards speckle components, in pixels.
	MinArea int
}

var _ calibration.PersonDetector = (*ContourPersonDetector)(nil)

// NewContourPersonDetector returns a detector with defaults tuned for
// full-body photos against dark backdrops.
func NewContourPersonDetector() *ContourPersonDetector {
	return &ContourPersonDetector{
		BlurRadius: 2.0,
		Threshold:  20,
		MinArea:    100,
	}
}

// DetectPersonHeight reports the bounding-box height of the largest
// foreground component, or detected=false when the image has no component
// above the noise floor.
func (d *ContourPersonDetector) DetectPersonHeight(img image.Image) (float64, bool, error) {
	blurred := blur.Gaussian(img, d.BlurRadius)
	mask := segment.Threshold(blurred, d.Threshold)

	person, ok := largestComponent(findComponents(mask, d.MinArea))
	if !ok {
		return 0, false, nil
	}
	return float64(person.height()), true, nil
}

// LandmarkPersonDetector adapts an external pose-landmark backend to the
// PersonDetector capability and applies the height policy: head landmark to
// the mean of the visible ankles, falling back to the contour detector when
// landmarks are unusable.
type LandmarkPersonDetector struct {
	Backend  LandmarkBackend
	Fallback calibration.PersonDetector
}

var _ calibration.PersonDetector = (*LandmarkPersonDetector)(nil)

// Landmark is one pose keypoint in pixel coordinates with a visibility
// score in [0,1].
type Landmark struct {
	X, Y       float64
	Visibility float64
}

// LandmarkBackend is an opaque pose estimator. ok is false when no person
// was found at all.
type LandmarkBackend interface {
	DetectPose(img image.Image) (head Landmark, leftAnkle, rightAnkle Landmark, ok bool, err error)
}

// DetectPersonHeight measures head-to-ankle pixel height from pose
// landmarks. Only ankles with visibility above AnkleVisibilityThreshold
// contribute; with no visible ankle (or no pose at all) the fallback
// detector decides.
func (d *LandmarkPersonDetector) DetectPersonHeight(img image.Image) (float64, bool, error) {
	head, left, right, ok, err := d.Backend.DetectPose(img)
	if err != nil {
		return 0, false, err
	}
	if ok {
		var ankleY float64
		var ankles int
		if left.Visibility > AnkleVisibilityThreshold {
			ankleY += left.Y
			ankles++
		}
		if right.Visibility > AnkleVisibilityThreshold {
			ankleY += right.Y
			ankles++
		}
		if ankles > 0 && head.Visibility > AnkleVisibilityThreshold {
			height := ankleY/float64(ankles) - head.Y
			if height < 0 {
				height = -height
			}
			return height, true, nil
		}
	}

	if d.Fallback == nil {
		return 0, false, nil
	}
	return d.Fallback.DetectPersonHeight(img)
}
