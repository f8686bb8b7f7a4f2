// SPDX-License-Identifier: MIT

package core_test

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/tourcanvas/core"
)

// ExampleDocument demonstrates basic creation, mutation, and queries.
func ExampleDocument() {
	d := core.NewDocument("delivery loop")
	d.AddNode("Depot")
	d.AddNode("Shop")
	d.AddEdge("Depot", "Shop", 4)
	d.AddEdge("Shop", "Depot", 2.5)

	for _, e := range d.Edges() {
		fmt.Println(e.ID, e.Label())
	}

	_, err := d.AddEdge("Depot", "Shop", 1)
	fmt.Println(errors.Is(err, core.ErrDuplicateEdge))

	_, removed, _ := d.RemoveNode("Shop")
	fmt.Println(len(removed), d.EdgeCount())

	// Output:
	// Depot-Shop 4
	// Shop-Depot 2.5
	// true
	// 2 0
}
