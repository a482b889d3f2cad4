// Copyright (c) 2026 BoiBritto. All rights reserved.

// Package genre holds the closed genre taxonomy shared by books, blogs,
// discussions, collections, and user interest lists.
package genre

// allowed is the closed set of genre tags accepted anywhere in the API.
var allowed = []string{
	"fiction",
	"non_fiction",
	"fantasy",
	"science_fiction",
	"mystery",
	"thriller",
	"romance",
	"horror",
	"historical",
	"biography",
	"poetry",
	"self_help",
	"young_adult",
	"children",
	"classic",
	"graphic_novel",
	"religion",
	"travel",
	"science",
	"other",
}

// allowedSet is the lookup index built once at init time.
var allowedSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(allowed))
	for _, g := range allowed {
		set[g] = struct{}{}
	}
	return set
}()

// Allowed returns the full allow-list in canonical order.
// Callers must not mutate the returned slice.
func Allowed() []string {
	return allowed
}

// IsValid reports whether a single genre tag is in the allow-list.
func IsValid(g string) bool {
	_, ok := allowedSet[g]
	return ok
}

// Invalid returns the first tag in the list that is not in the allow-list,
// or "" if all tags are valid. Used to produce precise field errors.
func Invalid(genres []string) string {
	for _, g := range genres {
		if !IsValid(g) {
			return g
		}
	}
	return ""
}
