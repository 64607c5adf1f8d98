package road

import (
	"github.com/routelab/route-optimizer/pkg/geo"
)

type RoadType int

const (
	Unknown RoadType = iota
	Motorway
	Trunk
	Primary
	Secondary
	Tertiary
	Residential
)

// A Segment is one stretch of road between junctions: an ordered run of OSM
// nodes with their coordinates. NodeIDs and Points are index-aligned.
type Segment struct {
	ID       int64
	Type     RoadType
	NodeIDs  []int64
	Points   []geo.Point
	Tags     map[string]string
	OneWay   bool
	MaxSpeed int // km/h
}

func (r RoadType) String() string {
	return []string{"Unknown", "Motorway", "Trunk", "Primary", "Secondary", "Tertiary", "Residential"}[r]
}

// DefaultSpeed is the assumed travel speed in km/h when a segment carries no
// maxspeed tag.
func (r RoadType) DefaultSpeed() int {
	switch r {
	case Motorway:
		return 120
	case Trunk:
		return 100
	case Primary:
		return 80
	case Secondary:
		return 60
	case Tertiary:
		return 40
	case Residential:
		return 30
	default:
		return 40
	}
}

// ParseRoadType maps an OSM highway tag value onto a RoadType.
func ParseRoadType(highway string) RoadType {
	switch highway {
	case "motorway", "motorway_link":
		return Motorway
	case "trunk", "trunk_link":
		return Trunk
	case "primary", "primary_link":
		return Primary
	case "secondary", "secondary_link":
		return Secondary
	case "tertiary", "tertiary_link":
		return Tertiary
	case "residential", "living_street", "unclassified":
		return Residential
	default:
		return Unknown
	}
}

// Speed returns the effective travel speed of the segment in km/h. It is
// capped at geo.MaxTravelSpeedKmh, which keeps edge travel times at or above
// the straight-line lower bound the time-metric heuristic relies on.
func (s *Segment) Speed() int {
	speed := s.Type.DefaultSpeed()
	if s.MaxSpeed > 0 {
		speed = s.MaxSpeed
	}
	if float64(speed) > geo.MaxTravelSpeedKmh {
		return int(geo.MaxTravelSpeedKmh)
	}
	return speed
}
