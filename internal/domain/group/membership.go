package group

import "sort"

// ResolveForEmployee returns the first active group, by name ascending, whose
// member set contains employeeID.
//
// This is a full scan: O(groups × members). Membership is stored as an array
// column and is not indexed, so callers must not assume a keyed lookup.
func ResolveForEmployee(groups []Group, employeeID int64) (Group, bool) {
	for _, g := range activeByName(groups) {
		if g.HasMember(employeeID) {
			return g, true
		}
	}
	return Group{}, false
}

// ResolveForEmployees is the batch form of ResolveForEmployee. Employees without
// a group are absent from the result.
func ResolveForEmployees(groups []Group, employeeIDs []int64) map[int64]Group {
	result := make(map[int64]Group, len(employeeIDs))
	sorted := activeByName(groups)
	for _, employeeID := range employeeIDs {
		if _, done := result[employeeID]; done {
			continue
		}
		for _, g := range sorted {
			if g.HasMember(employeeID) {
				result[employeeID] = g
				break
			}
		}
	}
	return result
}

func activeByName(groups []Group) []Group {
	active := make([]Group, 0, len(groups))
	for _, g := range groups {
		if g.IsActive {
			active = append(active, g)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Name < active[j].Name
	})
	return active
}
