// Package depsort orders tables so foreign-key targets come before the
// tables referencing them.
package depsort

import "sqlbench/internal/models"

// Sort places every table after its non-self foreign-key targets whenever
// such an order exists. It sweeps the unplaced tables repeatedly, placing
// any whose targets are all placed, and stops after a pass with no
// progress or at the 2*len(tables) bound; whatever is left (cycles) is
// appended in its original relative order. The result is always a
// permutation of the input and the sort never fails.
func Sort(tables []models.Table, edges []models.ForeignKeyEdge) []models.Table {
	if len(tables) == 0 {
		return nil
	}

	known := make(map[string]bool, len(tables))
	for _, t := range tables {
		known[t.Name] = true
	}

	// Non-self targets per table; targets outside the input set count as
	// satisfied.
	targets := make(map[string][]string)
	for _, e := range edges {
		if e.SourceTable == e.TargetTable {
			continue
		}
		if !known[e.SourceTable] || !known[e.TargetTable] {
			continue
		}
		targets[e.SourceTable] = append(targets[e.SourceTable], e.TargetTable)
	}

	sorted := make([]models.Table, 0, len(tables))
	placed := make(map[string]bool, len(tables))
	remaining := make([]models.Table, len(tables))
	copy(remaining, tables)

	for pass := 0; pass < 2*len(tables) && len(remaining) > 0; pass++ {
		var next []models.Table
		progress := false
		for _, t := range remaining {
			if satisfied(targets[t.Name], placed) {
				sorted = append(sorted, t)
				placed[t.Name] = true
				progress = true
			} else {
				next = append(next, t)
			}
		}
		remaining = next
		if !progress {
			break
		}
	}

	return append(sorted, remaining...)
}

func satisfied(targets []string, placed map[string]bool) bool {
	for _, t := range targets {
		if !placed[t] {
			return false
		}
	}
	return true
}

// Reverse returns a reversed copy; drops and clears run in this order so
// dependents go first.
func Reverse(tables []models.Table) []models.Table {
	out := make([]models.Table, len(tables))
	for i, t := range tables {
		out[len(tables)-1-i] = t
	}
	return out
}
