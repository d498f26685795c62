package permission_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zarvisretail/authkit/permission"
)

func testPermissions() []permission.Permission {
	return []permission.Permission{
		{ID: "1", Name: "Manage Products", Slug: "manage-products"},
		{ID: "2", Name: "View Products", Slug: "view-products"},
		{ID: "3", Name: "Manage Customers", Slug: "manage-customers"},
	}
}

func TestMatchesEmptyRequiredAlwaysTrue(t *testing.T) {
	require.True(t, permission.Matches(nil, nil, false))
	require.True(t, permission.Matches(nil, nil, true))
	require.True(t, permission.Matches([]string{}, []string{"anything"}, false))
	require.True(t, permission.Matches([]string{}, nil, true))
}

func TestMatchesAnyPolicy(t *testing.T) {
	required := []string{"manage-products", "view-products"}

	require.True(t, permission.Matches(required, []string{"view-products"}, false))
	require.True(t, permission.Matches(required, []string{"manage-products", "extra"}, false))
	require.False(t, permission.Matches(required, []string{"manage-customers"}, false))
	require.False(t, permission.Matches(required, nil, false))
}

func TestMatchesAllPolicy(t *testing.T) {
	required := []string{"manage-products", "view-products"}

	require.False(t, permission.Matches(required, []string{"view-products"}, true))
	require.True(t, permission.Matches(required, []string{"view-products", "manage-products"}, true))
	require.False(t, permission.Matches(required, nil, true))
}

func TestHas(t *testing.T) {
	perms := testPermissions()

	require.True(t, permission.Has(perms, "manage-products"))
	require.False(t, permission.Has(perms, "manage-banners"))
	require.False(t, permission.Has(nil, "manage-products"))
}

func TestHasAnyAndAll(t *testing.T) {
	perms := testPermissions()

	require.True(t, permission.HasAny(perms, []string{"manage-banners", "view-products"}))
	require.False(t, permission.HasAny(perms, []string{"manage-banners"}))

	require.True(t, permission.HasAll(perms, []string{"manage-products", "view-products"}))
	require.False(t, permission.HasAll(perms, []string{"manage-products", "manage-banners"}))
	require.True(t, permission.HasAll(perms, nil))
}

func TestSlugs(t *testing.T) {
	slugs := permission.Slugs(testPermissions())
	require.Equal(t, []string{"manage-products", "view-products", "manage-customers"}, slugs)
	require.Empty(t, permission.Slugs(nil))
}
