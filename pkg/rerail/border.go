package rerail

import (
	"slices"
)

func (m *Map) borderPtr(id BorderPointID) (*BorderPoint, error) {
	if !m.borders.Contains(id) {
		return nil, &ReferenceError{Kind: "border point", ID: id.String()}
	}
	return m.borders.Ptr(id), nil
}

func checkBorderLevel(level int) error {
	if level < 0 || level > MaxBorderLevel {
		return &LevelError{Kind: "border", Level: level, Max: MaxBorderLevel}
	}
	return nil
}

func edgeIndex(bp *BorderPoint, to BorderPointID) int {
	return slices.IndexFunc(bp.Neighbors, func(e BorderEdge) bool { return e.To == to })
}

// link adds the edge a-b at both endpoints. The edge must not exist yet.
func (m *Map) link(a, b BorderPointID, level int) {
	pa := m.borders.Ptr(a)
	pa.Neighbors = append(pa.Neighbors, BorderEdge{To: b, Level: level})
	pb := m.borders.Ptr(b)
	pb.Neighbors = append(pb.Neighbors, BorderEdge{To: a, Level: level})
}

func (m *Map) unlink(a, b BorderPointID) {
	pa := m.borders.Ptr(a)
	pa.Neighbors = slices.DeleteFunc(pa.Neighbors, func(e BorderEdge) bool { return e.To == b })
	pb := m.borders.Ptr(b)
	pb.Neighbors = slices.DeleteFunc(pb.Neighbors, func(e BorderEdge) bool { return e.To == a })
}

func (m *Map) deleteIfIsolated(id BorderPointID) {
	if len(m.borders.Ptr(id).Neighbors) == 0 {
		m.borders.Delete(id)
	}
}

// edge returns the level of edge a-b.
func (m *Map) edge(a, b BorderPointID) (int, error) {
	pa, err := m.borderPtr(a)
	if err != nil {
		return 0, err
	}
	if _, err := m.borderPtr(b); err != nil {
		return 0, err
	}
	i := edgeIndex(pa, b)
	if i < 0 {
		return 0, &EdgeError{A: a, B: b, Reason: "no such edge"}
	}
	return pa.Neighbors[i].Level, nil
}

// NewBorderSegment adds two border points joined by an edge.
func (m *Map) NewBorderSegment(a, b Coord, level int) (BorderPointID, BorderPointID, error) {
	if err := checkBorderLevel(level); err != nil {
		return BorderPointID{}, BorderPointID{}, err
	}
	ida := m.borders.Push(BorderPoint{Coord: a})
	idb := m.borders.Push(BorderPoint{Coord: b})
	m.link(ida, idb, level)
	return ida, idb, nil
}

// MoveBorderPoint changes the coordinate of a border point.
func (m *Map) MoveBorderPoint(id BorderPointID, c Coord) error {
	bp, err := m.borderPtr(id)
	if err != nil {
		return err
	}
	bp.Coord = c
	return nil
}

// InsertBorderPointBetween splits edge a-b with a new point at c. Both new
// edges keep the level of the split edge.
func (m *Map) InsertBorderPointBetween(a, b BorderPointID, c Coord) (BorderPointID, error) {
	level, err := m.edge(a, b)
	if err != nil {
		return BorderPointID{}, err
	}
	m.unlink(a, b)
	id := m.borders.Push(BorderPoint{Coord: c})
	m.link(a, id, level)
	m.link(id, b, level)
	return id, nil
}

// ConnectToNewBorderPoint adds a point at c joined to from.
func (m *Map) ConnectToNewBorderPoint(from BorderPointID, c Coord, level int) (BorderPointID, error) {
	if err := checkBorderLevel(level); err != nil {
		return BorderPointID{}, err
	}
	if _, err := m.borderPtr(from); err != nil {
		return BorderPointID{}, err
	}
	id := m.borders.Push(BorderPoint{Coord: c})
	m.link(from, id, level)
	return id, nil
}

// ConnectBorderPoints joins two existing points. When they are already
// joined only the edge level changes.
func (m *Map) ConnectBorderPoints(a, b BorderPointID, level int) error {
	if err := checkBorderLevel(level); err != nil {
		return err
	}
	pa, err := m.borderPtr(a)
	if err != nil {
		return err
	}
	pb, err := m.borderPtr(b)
	if err != nil {
		return err
	}
	if a == b {
		return &EdgeError{A: a, B: b, Reason: "cannot connect a point to itself"}
	}
	if i := edgeIndex(pa, b); i >= 0 {
		pa.Neighbors[i].Level = level
		pb.Neighbors[edgeIndex(pb, a)].Level = level
		return nil
	}
	m.link(a, b, level)
	return nil
}

// RemoveBorderPoint deletes a border point of degree two or less and reports
// whether it did so. A point between two neighbors is bridged: its
// neighbors are joined at the lower of the two edge levels unless they are
// joined already. A neighbor left without edges is deleted too. Points with
// three or more neighbors are left alone.
func (m *Map) RemoveBorderPoint(id BorderPointID) (bool, error) {
	bp, err := m.borderPtr(id)
	if err != nil {
		return false, err
	}
	switch len(bp.Neighbors) {
	case 0:
		m.borders.Delete(id)
	case 1:
		n := bp.Neighbors[0].To
		m.unlink(id, n)
		m.borders.Delete(id)
		m.deleteIfIsolated(n)
	case 2:
		e1, e2 := bp.Neighbors[0], bp.Neighbors[1]
		m.unlink(id, e1.To)
		m.unlink(id, e2.To)
		m.borders.Delete(id)
		if edgeIndex(m.borders.Ptr(e1.To), e2.To) < 0 {
			m.link(e1.To, e2.To, min(e1.Level, e2.Level))
		}
	default:
		return false, nil
	}
	return true, nil
}

// RemoveBorderEdge deletes edge a-b and any endpoint left without edges.
func (m *Map) RemoveBorderEdge(a, b BorderPointID) error {
	if _, err := m.edge(a, b); err != nil {
		return err
	}
	m.unlink(a, b)
	m.deleteIfIsolated(a)
	m.deleteIfIsolated(b)
	return nil
}
