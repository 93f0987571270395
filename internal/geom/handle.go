// Package geom holds the plain geometry types shared by the box engine.
package geom

// Handle names one of the eight resize grips on a box edge or corner.
type Handle string

// HandleNone marks an absent or rejected handle.
const HandleNone Handle = ""

const (
	// HandleTL is the top-left corner.
	HandleTL Handle = "tl"
	// HandleTM is the middle of the top edge.
	HandleTM Handle = "tm"
	// HandleTR is the top-right corner.
	HandleTR Handle = "tr"
	// HandleML is the middle of the left edge.
	HandleML Handle = "ml"
	// HandleMR is the middle of the right edge.
	HandleMR Handle = "mr"
	// HandleBL is the bottom-left corner.
	HandleBL Handle = "bl"
	// HandleBM is the middle of the bottom edge.
	HandleBM Handle = "bm"
	// HandleBR is the bottom-right corner.
	HandleBR Handle = "br"
)

// AllHandles lists the canonical handle set in canonical order.
var AllHandles = []Handle{HandleTL, HandleTM, HandleTR, HandleML, HandleMR, HandleBL, HandleBM, HandleBR}

// Valid reports whether h belongs to the canonical handle set.
func (h Handle) Valid() bool {
	switch h {
	case HandleTL, HandleTM, HandleTR, HandleML, HandleMR, HandleBL, HandleBM, HandleBR:
		return true
	default:
		return false
	}
}

// ValidateHandles maps every entry to itself when valid and to HandleNone
// otherwise. Order and length are preserved.
func ValidateHandles(requested []Handle) []Handle {
	out := make([]Handle, len(requested))
	for i, h := range requested {
		if h.Valid() {
			out[i] = h
		}
	}
	return out
}

// Anchor returns the point of r that the handle grips, as fractions of the
// width and height (0, 0.5 or 1).
func (h Handle) Anchor() (fx, fy float64) {
	switch h {
	case HandleTL:
		return 0, 0
	case HandleTM:
		return 0.5, 0
	case HandleTR:
		return 1, 0
	case HandleML:
		return 0, 0.5
	case HandleMR:
		return 1, 0.5
	case HandleBL:
		return 0, 1
	case HandleBM:
		return 0.5, 1
	case HandleBR:
		return 1, 1
	default:
		return 0, 0
	}
}
