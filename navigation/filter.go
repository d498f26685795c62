// Package navigation decides which declarative menu items are visible
// for a set of permission slugs, and whether a page may be entered at
// all. Menu visibility and page access use the same matching primitive
// but are enforced independently: a page can be reached by direct URL
// even when its menu entry is hidden.
package navigation

import "github.com/zarvisretail/authkit/permission"

// Item is one node of the declarative navigation tree. Static
// configuration, never persisted.
type Item struct {
	ID                  string
	Label               string
	Href                string
	RequiredPermissions []string
	RequireAll          bool
	AlwaysShow          bool
	Submenu             []Item
}

// Filter returns the subset of items visible to a holder of userSlugs.
// The input is not mutated and order is preserved. AlwaysShow items are
// kept unconditionally. A parent with a submenu is kept only when its
// filtered submenu is non-empty; a parent with no visible children must
// not render as a dead entry.
func Filter(items []Item, userSlugs []string) []Item {
	visible := make([]Item, 0, len(items))
	for _, item := range items {
		if item.AlwaysShow {
			visible = append(visible, item)
			continue
		}
		if len(item.Submenu) > 0 {
			submenu := Filter(item.Submenu, userSlugs)
			if len(submenu) == 0 {
				continue
			}
			item.Submenu = submenu
			visible = append(visible, item)
			continue
		}
		if permission.Matches(item.RequiredPermissions, userSlugs, item.RequireAll) {
			visible = append(visible, item)
		}
	}
	return visible
}

// FilterLoading returns only AlwaysShow items. Used while the session
// manager has not resolved yet, so the loading window neither leaks
// privileged entries nor renders an empty menu.
func FilterLoading(items []Item) []Item {
	visible := make([]Item, 0, len(items))
	for _, item := range items {
		if !item.AlwaysShow {
			continue
		}
		if len(item.Submenu) > 0 {
			item.Submenu = FilterLoading(item.Submenu)
		}
		visible = append(visible, item)
	}
	return visible
}
