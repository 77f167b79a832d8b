package memory

import "github.com/aretw0/timeoverwrite/pkg/core"

// Edit records that the text in [Start, End) was replaced by Inserted characters.
type Edit struct {
	Start    int
	End      int
	Inserted int
}

// Delta is the change in document length caused by the edit.
func (e Edit) Delta() int {
	return e.Inserted - (e.End - e.Start)
}

// mapStart maps a start offset across the edit. Text inserted exactly at the
// offset pushes it right; offsets inside the replaced span collapse onto its start.
func (e Edit) mapStart(p int) int {
	switch {
	case p < e.Start:
		return p
	case p >= e.End:
		return p + e.Delta()
	default:
		return e.Start
	}
}

// mapEnd maps an end offset. Text inserted exactly at the offset stays
// outside; offsets inside the replaced span move to the end of the inserted
// text, so a location rewritten as a whole keeps covering the new text.
func (e Edit) mapEnd(p int) int {
	switch {
	case p <= e.Start:
		return p
	case p >= e.End:
		return p + e.Delta()
	default:
		return e.Start + e.Inserted
	}
}

// Apply maps a region across the edit.
func (e Edit) Apply(r core.Region) core.Region {
	start := e.mapStart(r[0])
	end := e.mapEnd(r[1])
	if end < start {
		end = start
	}
	return core.Region{start, end}
}
