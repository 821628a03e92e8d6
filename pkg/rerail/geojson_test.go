package rerail

import (
	"testing"

	geojson "github.com/paulmach/go.geojson"
)

func TestGeoJSON(t *testing.T) {
	m := sampleMap(t)
	data, err := m.GeoJSON()
	if err != nil {
		t.Fatalf("GeoJSON: %v", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	kinds := map[string]int{}
	var shinjuku *geojson.Feature
	for _, f := range fc.Features {
		kind, err := f.PropertyString("kind")
		if err != nil {
			t.Fatalf("feature without kind: %v", f.Properties)
		}
		kinds[kind]++
		if name, _ := f.PropertyString("name"); name == "新宿" {
			shinjuku = f
		}
	}
	want := map[string]int{"railway": 3, "station": 2, "border": 3}
	for k, n := range want {
		if kinds[k] != n {
			t.Errorf("%d %s features, want %d", kinds[k], k, n)
		}
	}

	if shinjuku == nil || !shinjuku.Geometry.IsPoint() {
		t.Fatalf("station 新宿 missing or not a point")
	}
	if p := shinjuku.Geometry.Point; p[0] != 1000 || p[1] != 1000 {
		t.Errorf("新宿 at %v, want [1000 1000]", p)
	}
	if rs, ok := shinjuku.Properties["railways"].([]any); !ok || len(rs) != 2 {
		t.Errorf("新宿 railways = %v", shinjuku.Properties["railways"])
	}

	first := fc.Features[0]
	if color, _ := first.PropertyString("color"); color != "#9acd32" {
		t.Errorf("first railway color = %q", color)
	}
	if len(first.Geometry.LineString) != 4 {
		t.Errorf("first railway has %d positions", len(first.Geometry.LineString))
	}
}

func TestGeoJSONEmpty(t *testing.T) {
	fc := NewMap().FeatureCollection()
	if len(fc.Features) != 0 {
		t.Errorf("empty map exported %d features", len(fc.Features))
	}
}
