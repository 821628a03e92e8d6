package rerail

import (
	"fmt"
	"slices"

	geojson "github.com/paulmach/go.geojson"
)

func position(c Coord) []float64 {
	return []float64{float64(c.X), float64(c.Y)}
}

func (c Color) hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// FeatureCollection exports the map as GeoJSON in world units. Railways
// become LineStrings, stations Points placed at the first railway point
// attached to them, and each border edge its own LineString. Features are
// ordered by kind and then by id; every feature carries "kind", "id" and
// "level" properties.
func (m *Map) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	placed := make(map[StationID]Coord, m.stations.Len())

	for _, id := range m.railways.IDs() {
		r := m.railways.Ptr(id)
		line := make([][]float64, len(r.Points))
		for i, p := range r.Points {
			line[i] = position(p.Coord)
			if p.HasStation() {
				if _, ok := placed[p.Station]; !ok {
					placed[p.Station] = p.Coord
				}
			}
		}
		f := geojson.NewLineStringFeature(line)
		f.SetProperty("kind", "railway")
		f.SetProperty("id", id.String())
		f.SetProperty("name", r.Name)
		f.SetProperty("level", r.Level)
		f.SetProperty("color", r.Color.hex())
		fc.AddFeature(f)
	}

	for _, id := range m.stations.IDs() {
		s := m.stations.Ptr(id)
		railways := make([]string, len(s.Railways))
		for i, rid := range s.Railways {
			railways[i] = rid.String()
		}
		f := geojson.NewPointFeature(position(placed[id]))
		f.SetProperty("kind", "station")
		f.SetProperty("id", id.String())
		f.SetProperty("name", s.Name)
		f.SetProperty("level", s.Level)
		f.SetProperty("railways", railways)
		fc.AddFeature(f)
	}

	for _, id := range m.borders.IDs() {
		bp := m.borders.Ptr(id)
		edges := slices.Clone(bp.Neighbors)
		slices.SortFunc(edges, func(a, b BorderEdge) int { return a.To.Compare(b.To) })
		for _, e := range edges {
			if !id.Less(e.To) {
				continue
			}
			f := geojson.NewLineStringFeature([][]float64{position(bp.Coord), position(m.borders.Ptr(e.To).Coord)})
			f.SetProperty("kind", "border")
			f.SetProperty("id", id.String()+"-"+e.To.String())
			f.SetProperty("level", e.Level)
			fc.AddFeature(f)
		}
	}
	return fc
}

// GeoJSON returns the encoded FeatureCollection.
func (m *Map) GeoJSON() ([]byte, error) {
	return m.FeatureCollection().MarshalJSON()
}
