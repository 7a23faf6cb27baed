package almostover

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// FromOrb converts an orb geometry into an Item: a single Geometry for
// points, line strings, and rings, or a Group for multi-part geometries.
// Polygons contribute one boundary per ring, holes included. It returns nil
// for nil or unsupported geometries.
func FromOrb(g orb.Geometry, userData any) Item {
	switch v := g.(type) {
	case orb.Point:
		return withUserData(NewPoint(v), userData)
	case orb.LineString:
		return withUserData(NewPolyline(v), userData)
	case orb.Ring:
		return withUserData(NewPolygon(v), userData)
	case orb.Bound:
		return withUserData(NewPolygon(v.ToRing()), userData)
	case orb.MultiPoint:
		gr := NewGroup()
		for _, p := range v {
			gr.Add(withUserData(NewPoint(p), userData))
		}
		return gr
	case orb.MultiLineString:
		gr := NewGroup()
		for _, ls := range v {
			gr.Add(withUserData(NewPolyline(ls), userData))
		}
		return gr
	case orb.Polygon:
		gr := NewGroup()
		for _, r := range v {
			gr.Add(withUserData(NewPolygon(r), userData))
		}
		return gr
	case orb.MultiPolygon:
		gr := NewGroup()
		for _, p := range v {
			gr.Add(FromOrb(p, userData))
		}
		return gr
	case orb.Collection:
		gr := NewGroup()
		for _, c := range v {
			if item := FromOrb(c, userData); item != nil {
				gr.Add(item)
			}
		}
		return gr
	default:
		return nil
	}
}

func withUserData(g *Geometry, userData any) *Geometry {
	g.UserData = userData
	return g
}

// FromFeatureCollection builds a group with one member per feature. Each
// resulting geometry carries its *geojson.Feature as UserData. Features
// without a supported geometry are skipped.
func FromFeatureCollection(fc *geojson.FeatureCollection) *Group {
	gr := NewGroup()
	for _, f := range fc.Features {
		if f == nil {
			continue
		}
		if item := FromOrb(f.Geometry, f); item != nil {
			gr.Add(item)
		}
	}
	return gr
}

// LoadGeoJSON parses a GeoJSON FeatureCollection into a group ready for
// registration.
func LoadGeoJSON(data []byte) (*Group, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parse geojson: %w", err)
	}
	return FromFeatureCollection(fc), nil
}
