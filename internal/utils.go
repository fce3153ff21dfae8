package internal

import (
	"sort"

	mapset "github.com/deckarep/golang-set"
)

// SortedUniques returns the distinct strings in strs, sorted.
func SortedUniques(strs []string) []string {
	set := mapset.NewSet()
	for _, str := range strs {
		set.Add(str)
	}

	var uniques []string
	for member := range set.Iter() {
		if str, ok := member.(string); ok {
			uniques = append(uniques, str)
		}
	}
	sort.Strings(uniques)
	return uniques
}

// Duplicates returns, sorted, every string that appears more than once in strs.
func Duplicates(strs []string) []string {
	seen := mapset.NewSet()
	var dupes []string
	for _, str := range strs {
		if !seen.Add(str) {
			dupes = append(dupes, str)
		}
	}
	return SortedUniques(dupes)
}
