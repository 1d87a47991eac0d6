package client

import (
	"strings"

	"cafedir/model"
)

// FacilityKeys is the canonical facilities schema the directory UI renders.
// The server stores facilities schema-free; this list is a client concern.
var FacilityKeys = []string{
	"wifi",
	"parking",
	"bathroom",
	"petFriendly",
	"photoSpot",
	"cozySeats",
	"suitableForDate",
}

// Filter describes the list page's search box and facility checkboxes.
type Filter struct {
	// Query matches case-insensitively against name and address.
	Query string
	// Facilities lists keys that must be truthy on the café.
	Facilities []string
}

// FilterCafes applies the list-page search/filter locally, preserving the
// collection's order.
func FilterCafes(cafes []model.Cafe, f Filter) []model.Cafe {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	var out []model.Cafe
	for _, cafe := range cafes {
		if query != "" &&
			!strings.Contains(strings.ToLower(cafe.Name), query) &&
			!strings.Contains(strings.ToLower(cafe.Address), query) {
			continue
		}
		if !hasFacilities(cafe, f.Facilities) {
			continue
		}
		out = append(out, cafe)
	}
	return out
}

func hasFacilities(cafe model.Cafe, required []string) bool {
	for _, key := range required {
		v, ok := cafe.Facilities[key]
		if !ok {
			return false
		}
		switch val := v.(type) {
		case bool:
			if !val {
				return false
			}
		case string:
			if val == "" {
				return false
			}
		default:
			return false
		}
	}
	return true
}
