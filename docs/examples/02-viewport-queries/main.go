package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/rerail/pkg/rerail"
)

func main() {
	m, err := rerail.LoadFile("kanto.rl")
	if err != nil {
		log.Fatal(err)
	}

	// 800x600 pixels, 500 world units per pixel
	vp, err := rerail.NewViewport(rerail.ViewportSpec{
		LeftX: 100000, TopY: 200000,
		Width: 800, Height: 600,
		Zoom: 500,
	})
	if err != nil {
		log.Fatal(err)
	}

	list := m.RailwaysInViewport(vp)
	fmt.Printf("Visible railways: %d\n", len(list.IDs))
	for i, name := range list.Names {
		fmt.Printf("  %v %s\n", list.IDs[i], name)
	}

	info := m.Render(vp, rerail.RenderOptions{})
	fmt.Printf("Polyline groups: %d\n", info.Groups())
	for _, s := range info.Stations {
		fmt.Printf("  station %s at (%d, %d)\n", s.Name, s.X, s.Y)
	}
}
