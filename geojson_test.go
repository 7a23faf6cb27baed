package almostover

import (
	"errors"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeatures = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"name": "river"},
     "geometry": {"type": "LineString", "coordinates": [[0, 0], [10, 0], [20, 5]]}},
    {"type": "Feature", "properties": {"name": "well"},
     "geometry": {"type": "Point", "coordinates": [5, 5]}},
    {"type": "Feature", "properties": {"name": "park"},
     "geometry": {"type": "Polygon", "coordinates": [
       [[30, 30], [40, 30], [40, 40], [30, 40], [30, 30]],
       [[33, 33], [36, 33], [36, 36], [33, 33]]
     ]}}
  ]
}`

func TestLoadGeoJSON(t *testing.T) {
	gr, err := LoadGeoJSON([]byte(sampleFeatures))
	require.NoError(t, err)
	assert.Equal(t, 3, gr.Len())

	r := NewRegistry(nil)
	ids, err := r.Register(gr)
	require.NoError(t, err)
	// river, well, park outer ring and hole
	assert.Len(t, ids, 4)

	kinds := make([]Kind, 0, 4)
	names := make([]string, 0, 4)
	for _, g := range r.All() {
		kinds = append(kinds, g.Kind)
		f, ok := g.UserData.(*geojson.Feature)
		require.True(t, ok, "UserData should be the source feature")
		names = append(names, f.Properties.MustString("name"))
	}
	assert.Equal(t, []Kind{KindPolyline, KindPoint, KindPolygon, KindPolygon}, kinds)
	assert.Equal(t, []string{"river", "well", "park", "park"}, names)
}

func TestLoadGeoJSONInvalid(t *testing.T) {
	_, err := LoadGeoJSON([]byte(`{"type": "FeatureCollection", "features": [`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse geojson")
}

func TestFromOrb(t *testing.T) {
	tests := []struct {
		name   string
		g      orb.Geometry
		leaves int
	}{
		{"point", orb.Point{1, 2}, 1},
		{"line string", orb.LineString{{0, 0}, {1, 1}}, 1},
		{"ring", orb.Ring{{0, 0}, {1, 0}, {0, 1}, {0, 0}}, 1},
		{"bound", orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{2, 2}}, 1},
		{"multi point", orb.MultiPoint{{0, 0}, {1, 1}, {2, 2}}, 3},
		{"multi line string", orb.MultiLineString{{{0, 0}, {1, 1}}, {{2, 2}, {3, 3}}}, 2},
		{"multi polygon", orb.MultiPolygon{
			{{{0, 0}, {1, 0}, {0, 1}}},
			{{{5, 5}, {6, 5}, {5, 6}}, {{5.1, 5.1}, {5.2, 5.1}, {5.1, 5.2}}},
		}, 3},
		{"collection", orb.Collection{orb.Point{0, 0}, orb.LineString{{1, 1}, {2, 2}}}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := FromOrb(tt.g, tt.name)
			require.NotNil(t, item)
			r := NewRegistry(nil)
			ids, err := r.Register(item)
			require.NoError(t, err)
			assert.Len(t, ids, tt.leaves)
			r.Each(func(g *Geometry) bool {
				assert.Equal(t, tt.name, g.UserData)
				return true
			})
		})
	}
}

func TestFromOrbNil(t *testing.T) {
	assert.Nil(t, FromOrb(nil, nil))
}

func TestFromOrbEmptyLineIsInvalid(t *testing.T) {
	_, err := NewRegistry(nil).Register(FromOrb(orb.LineString{}, nil))
	assert.True(t, errors.Is(err, ErrInvalidGeometry))
}

func TestGeoJSONGeodesicTracking(t *testing.T) {
	gr, err := LoadGeoJSON([]byte(`{"type": "FeatureCollection", "features": [
	  {"type": "Feature", "properties": {},
	   "geometry": {"type": "LineString", "coordinates": [[2.30, 48.85], [2.40, 48.85]]}}]}`))
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.Metric = Geodesic
	opts.Index = NewRTreeIndex()
	opts.SamplingPeriod = 0
	tr := NewTracker(opts)
	// One pixel is 1e-5 degrees: a 25 px threshold is a few metres.
	tr.SetProjector(scaleProjector{scale: 1e-5})
	_, err = tr.Add(gr)
	require.NoError(t, err)
	require.Greater(t, tr.Radius(), 0.0)

	var entered int
	tr.OnEnter(func(Event) { entered++ })
	tr.HandleSample(orb.Point{2.35, 48.85001}) // about 1.1 m north of the line
	assert.Equal(t, 1, entered)

	tr.HandleSample(orb.Point{2.35, 48.86}) // about 1.1 km away
	assert.Nil(t, tr.Current())
}
