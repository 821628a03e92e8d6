package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/beetlebugorg/rerail/pkg/rerail"
)

func safeLoadMap(path string) (*rerail.Map, error) {
	m, err := rerail.LoadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("map file not found: %s", path)
		}

		var ferr *rerail.FormatError
		if errors.As(err, &ferr) {
			log.Printf("%s is not a readable map: %s", path, ferr.Reason)
		}
		var ierr *rerail.InvariantError
		if errors.As(err, &ierr) {
			log.Printf("%s is damaged: %s", path, ierr.Reason)
		}
		return nil, err
	}

	if m.RailwayCount() == 0 {
		log.Printf("Warning: %s contains no railways", path)
	}
	return m, nil
}

func main() {
	m, err := safeLoadMap("kanto.rl")
	if err != nil {
		log.Printf("Error: %v", err)
		return
	}
	fmt.Printf("Loaded %d railways\n", m.RailwayCount())

	// Edits report what went wrong through typed errors
	id := m.RailwayIDs()
	if len(id) > 0 {
		err := m.MoveRailwayPoint(id[0], 1<<20, rerail.Coord{})
		var perr *rerail.PointIndexError
		if errors.As(err, &perr) {
			log.Printf("Expected error: index %d of %d", perr.Index, perr.Len)
		}
	}

	_, err = safeLoadMap("missing.rl")
	if err != nil {
		log.Printf("Expected error: %v", err)
	}
}
