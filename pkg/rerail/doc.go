// Package rerail is the document model of a railway map editor.
//
// A Map holds three kinds of entities addressed by stable ids: railways
// (named, colored polylines), stations (named stops attached to railway
// points) and border points (vertices of an undirected graph of
// administrative borders). All coordinates are exact int32 world units.
//
// # Editing
//
// Edits are methods on *Map. Each one either succeeds completely or
// returns an error and leaves the map unchanged:
//
//	m := rerail.NewMap()
//	line, _ := m.NewRailway(rerail.RailwayInfo{Name: "Loop", Level: 2})
//	_ = m.AppendRailwayPoint(line, rerail.Coord{X: 0, Y: 0})
//	_ = m.AppendRailwayPoint(line, rerail.Coord{X: 1000, Y: 0})
//	_ = m.SetStationInfo(line, 0, rerail.StationInfo{Name: "Central"})
//
// Stations are created by SetStationInfo or LinkToStation and deleted
// automatically when the last railway point referring to them goes away.
// Border points likewise disappear once they have no edges.
//
// # Rendering
//
// A Viewport maps world coordinates to screen pixels by truncating integer
// division. Render walks the map once per frame and returns a flat
// RenderingInfo of stroke groups, markers and station labels for a
// renderer to draw in batches. FindNearestSegment and FindNearestBorder
// turn mouse positions into edit targets.
//
// # Files
//
// Load reads both the legacy binary format and the format written by Save.
// GeoJSON exports a read-only copy for GIS tools.
package rerail
