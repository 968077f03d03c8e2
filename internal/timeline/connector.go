// Package timeline computes where the vertical connector line of the career
// timeline is drawn.
package timeline

// Rect is the vertical extent of a laid-out element, in viewport pixels.
type Rect struct {
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Center is the vertical midpoint.
func (r Rect) Center() float64 { return r.Top + r.Height/2 }

// LinePosition is the connector span relative to the container's top edge.
type LinePosition struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

func (p LinePosition) Height() float64 { return p.Bottom - p.Top }

// Layout is one post-layout snapshot of the timeline. A nil item has not
// been laid out yet.
type Layout struct {
	Container Rect    `json:"container"`
	Items     []*Rect `json:"items"`
}

// Measure spans the line from the center of first to the center of last.
// It reports false when either endpoint is missing.
func Measure(container Rect, first, last *Rect) (LinePosition, bool) {
	if first == nil || last == nil {
		return LinePosition{}, false
	}

	pos := LinePosition{
		Top:    first.Center() - container.Top,
		Bottom: last.Center() - container.Top,
	}
	if pos.Bottom < pos.Top {
		pos.Bottom = pos.Top
	}
	return pos, true
}

// Connector keeps the last applied LinePosition. The zero value starts at
// zero/zero.
type Connector struct {
	pos LinePosition
}

// Update measures the first and last item of l. The position only changes
// when both endpoints are present.
func (c *Connector) Update(l Layout) bool {
	if len(l.Items) == 0 {
		return false
	}

	pos, ok := Measure(l.Container, l.Items[0], l.Items[len(l.Items)-1])
	if !ok {
		return false
	}
	c.pos = pos
	return true
}

func (c *Connector) Position() LinePosition { return c.pos }
