package rerail

// ViewportRailwayList names the railways visible in a viewport. Names[i]
// belongs to IDs[i]; entries are in id order.
type ViewportRailwayList struct {
	Names []string    `json:"names"`
	IDs   []RailwayID `json:"-"`
}

// RailwaysInViewport lists the railways drawn at the viewport's zoom that
// have at least one segment crossing it.
func (m *Map) RailwaysInViewport(vp *Viewport) ViewportRailwayList {
	var out ViewportRailwayList
	for _, id := range m.railways.IDs() {
		rw := m.railways.Ptr(id)
		if !m.config.LOD.RailwayVisible(rw.Level, vp.Zoom()) {
			continue
		}
		for i := 1; i < len(rw.Points); i++ {
			if vp.CrossesSegment(rw.Points[i-1].Coord, rw.Points[i].Coord) {
				out.Names = append(out.Names, rw.Name)
				out.IDs = append(out.IDs, id)
				break
			}
		}
	}
	return out
}
