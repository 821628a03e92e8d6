package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/rerail/pkg/rerail"
)

func main() {
	m := rerail.NewMap()

	line, err := m.NewRailway(rerail.RailwayInfo{
		Name:  "Coast Line",
		Color: rerail.Color{R: 0, G: 128, B: 255},
		Level: 2,
	})
	if err != nil {
		log.Fatal(err)
	}
	for _, c := range []rerail.Coord{{X: 0, Y: 0}, {X: 50000, Y: 0}, {X: 50000, Y: 30000}} {
		if err := m.AppendRailwayPoint(line, c); err != nil {
			log.Fatal(err)
		}
	}

	// Name the middle point; this creates its station
	if err := m.SetStationInfo(line, 1, rerail.StationInfo{Name: "Harbor", Level: 1}); err != nil {
		log.Fatal(err)
	}

	// A second railway starting at the same place can share the station
	branch, err := m.NewRailway(rerail.RailwayInfo{Name: "Branch", Level: 1})
	if err != nil {
		log.Fatal(err)
	}
	if err := m.AppendRailwayPoint(branch, rerail.Coord{X: 50000, Y: 0}); err != nil {
		log.Fatal(err)
	}
	if err := m.AppendRailwayPoint(branch, rerail.Coord{X: 90000, Y: -20000}); err != nil {
		log.Fatal(err)
	}
	vp, err := rerail.NewViewport(rerail.ViewportSpec{Width: 1000, Height: 1000, Zoom: 100, TopY: -50000})
	if err != nil {
		log.Fatal(err)
	}
	linked, err := m.LinkToStation(branch, 0, vp, vp.ToScreen(rerail.Coord{X: 50000, Y: 0}))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Branch linked to Harbor: %v\n", linked)

	// A border between two regions
	a, b, err := m.NewBorderSegment(rerail.Coord{X: 20000, Y: -40000}, rerail.Coord{X: 20000, Y: 40000}, 2)
	if err != nil {
		log.Fatal(err)
	}
	if _, err := m.InsertBorderPointBetween(a, b, rerail.Coord{X: 25000, Y: 0}); err != nil {
		log.Fatal(err)
	}

	if err := m.Validate(); err != nil {
		log.Fatal(err)
	}
	if err := m.SaveFile("coast.rl"); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Saved %d railways, %d stations, %d border points\n",
		m.RailwayCount(), m.StationCount(), m.BorderPointCount())
}
