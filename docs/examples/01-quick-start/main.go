package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/rerail/pkg/rerail"
)

func main() {
	// Load a map in either the legacy or the current format
	m, err := rerail.LoadFile("kanto.rl")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Railways: %d\n", m.RailwayCount())
	fmt.Printf("Stations: %d\n", m.StationCount())
	fmt.Printf("Border points: %d\n", m.BorderPointCount())

	for id, r := range m.Railways() {
		fmt.Printf("  %v %s (level %d, %d points)\n", id, r.Name, r.Level, len(r.Points))
	}
}
