// Package tilt maps raw device input to the card tilt the gallery applies on the
// client. The variant is chosen once per session: pointer devices report the
// cursor position over a card, handhelds report their orientation sensor angles.
package tilt

import (
	"net/http"
	"strings"
)

// MaxDegrees is the largest rotation applied around either axis.
const MaxDegrees = 8.0

type Kind string

const (
	KindPointer     Kind = "pointer"
	KindOrientation Kind = "orientation"
)

type Source interface {
	Kind() Kind
	// Rotation converts an input pair into rotations around the X and Y axes.
	Rotation(a, b float64) (rotX, rotY float64)
}

// PointerDelta takes the cursor position relative to the card centre, each axis
// normalised to [-0.5, 0.5].
type PointerDelta struct{}

func (PointerDelta) Kind() Kind { return KindPointer }

func (PointerDelta) Rotation(x, y float64) (float64, float64) {
	x = clamp(x, -0.5, 0.5)
	y = clamp(y, -0.5, 0.5)
	return -y * 2 * MaxDegrees, x * 2 * MaxDegrees
}

// OrientationDelta takes the device beta (front/back) and gamma (left/right)
// angles in degrees. Range is the device angle that produces full rotation.
type OrientationDelta struct {
	Range float64
}

func (OrientationDelta) Kind() Kind { return KindOrientation }

func (o OrientationDelta) Rotation(beta, gamma float64) (float64, float64) {
	r := o.Range
	if r <= 0 {
		r = defaultOrientationRange
	}
	return -clamp(beta/r, -1, 1) * MaxDegrees, clamp(gamma/r, -1, 1) * MaxDegrees
}

const defaultOrientationRange = 30.0

// Capabilities describes what the client can feed into a Source.
type Capabilities struct {
	Touch       bool
	Orientation bool
}

// Select picks the Source for a session.
func Select(c Capabilities) Source {
	if c.Touch && c.Orientation {
		return OrientationDelta{Range: defaultOrientationRange}
	}
	return PointerDelta{}
}

// CapabilitiesFromRequest guesses client capabilities from client hints and the
// user agent. Handhelds are assumed to carry an orientation sensor.
func CapabilitiesFromRequest(r *http.Request) Capabilities {
	mobile := r.Header.Get("Sec-CH-UA-Mobile") == "?1" ||
		strings.Contains(r.UserAgent(), "Mobi")
	return Capabilities{Touch: mobile, Orientation: mobile}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
