package utils

// CityAll is the wildcard city scope. Administrators scoped to it see
// everything; resources tagged with it are visible to every scope.
const CityAll = "All"

// CityVisible decides whether a resource tagged with resourceCity is
// visible to a viewer with the given city scope. This one predicate
// governs public menu filtering, admin order visibility and order
// status-update authorization.
func CityVisible(scope, resourceCity string) bool {
	return scope == CityAll || resourceCity == CityAll || scope == resourceCity
}
