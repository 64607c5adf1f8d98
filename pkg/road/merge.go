package road

// Merger joins segments that meet end-to-end at a node shared by exactly two
// segments of the same road type, so that long roads split into many OSM
// ways collapse into single segments before graph construction.
type Merger struct {
	roads      []*Segment
	mergeCount int
}

func NewMerger(roads []*Segment) *Merger {
	return &Merger{roads: roads}
}

// MergeCount reports how many joins the last Merge performed.
func (m *Merger) MergeCount() int {
	return m.mergeCount
}

// Merge repeatedly joins mergeable segment pairs and returns the remaining
// segments.
func (m *Merger) Merge() []*Segment {
	m.mergeCount = 0

	for {
		merged := false

		endpoints := make(map[int64][]*Segment)
		for _, segment := range m.roads {
			if len(segment.NodeIDs) < 2 {
				continue
			}
			endpoints[segment.NodeIDs[0]] = append(endpoints[segment.NodeIDs[0]], segment)
			endpoints[segment.NodeIDs[len(segment.NodeIDs)-1]] = append(endpoints[segment.NodeIDs[len(segment.NodeIDs)-1]], segment)
		}

		for node, segments := range endpoints {
			if len(segments) != 2 {
				continue
			}
			a, b := segments[0], segments[1]
			if a == b || a.Type != b.Type || a.OneWay != b.OneWay || a.Speed() != b.Speed() {
				continue
			}
			m.roads = removeSegment(m.roads, b)
			join(a, b, node)
			m.mergeCount++
			merged = true
			break
		}

		if !merged {
			return m.roads
		}
	}
}

// join appends b onto a at the shared node, reorienting either segment as
// needed.
func join(a, b *Segment, node int64) {
	if a.NodeIDs[0] == node {
		reverse(a)
	}
	if b.NodeIDs[len(b.NodeIDs)-1] == node {
		reverse(b)
	}
	a.NodeIDs = append(a.NodeIDs, b.NodeIDs[1:]...)
	a.Points = append(a.Points, b.Points[1:]...)
}

func reverse(s *Segment) {
	for i, j := 0, len(s.NodeIDs)-1; i < j; i, j = i+1, j-1 {
		s.NodeIDs[i], s.NodeIDs[j] = s.NodeIDs[j], s.NodeIDs[i]
		s.Points[i], s.Points[j] = s.Points[j], s.Points[i]
	}
}

func removeSegment(roads []*Segment, target *Segment) []*Segment {
	for i, segment := range roads {
		if segment == target {
			return append(roads[:i], roads[i+1:]...)
		}
	}
	return roads
}
