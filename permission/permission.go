// Package permission holds the permission record fetched from the
// admin API and the slug-matching primitive shared by the menu filter
// and the route guard.
package permission

// Permission is one entry of a role's permission list. Only Slug is
// used for authorization decisions.
type Permission struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

// Slugs projects a permission list to its slugs, preserving order.
func Slugs(permissions []Permission) []string {
	slugs := make([]string, 0, len(permissions))
	for _, p := range permissions {
		slugs = append(slugs, p.Slug)
	}
	return slugs
}

// Has reports whether the list contains a permission with the slug.
func Has(permissions []Permission, slug string) bool {
	for _, p := range permissions {
		if p.Slug == slug {
			return true
		}
	}
	return false
}

// HasAny reports whether the list contains at least one of the slugs.
func HasAny(permissions []Permission, slugs []string) bool {
	for _, slug := range slugs {
		if Has(permissions, slug) {
			return true
		}
	}
	return false
}

// HasAll reports whether the list contains every one of the slugs.
func HasAll(permissions []Permission, slugs []string) bool {
	for _, slug := range slugs {
		if !Has(permissions, slug) {
			return false
		}
	}
	return true
}

// Matches is the shared authorization primitive. An empty required list
// means no restriction. With requireAll every required slug must be
// held; otherwise one is enough.
func Matches(required, userSlugs []string, requireAll bool) bool {
	if len(required) == 0 {
		return true
	}
	if requireAll {
		for _, slug := range required {
			if !contains(userSlugs, slug) {
				return false
			}
		}
		return true
	}
	for _, slug := range required {
		if contains(userSlugs, slug) {
			return true
		}
	}
	return false
}

func contains(slugs []string, slug string) bool {
	for _, s := range slugs {
		if s == slug {
			return true
		}
	}
	return false
}
