package navigation

// Access presets for common admin page classes.
var (
	AdminOnly = Access{
		RequiredPermissions: []string{"manage-roles", "manage-permissions"},
	}
	ProductAccess = Access{
		RequiredPermissions: []string{"manage-products", "view-products"},
	}
	CustomerAccess = Access{
		RequiredPermissions: []string{"manage-customers"},
	}
	InventoryAccess = Access{
		RequiredPermissions: []string{"manage-inventory"},
	}
)

// DefaultMenu returns the admin sidebar tree. The dashboard entry is
// visible to every authenticated role; everything else is gated by
// permission slugs, default-OR unless RequireAll is set.
func DefaultMenu() []Item {
	return []Item{
		{
			ID:         "dashboard",
			Label:      "Dashboard",
			Href:       "/admin",
			AlwaysShow: true,
		},
		{
			ID:                  "products",
			Label:               "Products",
			Href:                "/admin/products",
			RequiredPermissions: []string{"manage-products", "view-products"},
		},
		{
			ID:                  "categories",
			Label:               "Categories",
			Href:                "/admin/categories",
			RequiredPermissions: []string{"manage-products"},
		},
		{
			ID:                  "customers",
			Label:               "Customers",
			Href:                "/admin/customers",
			RequiredPermissions: []string{"manage-customers"},
		},
		{
			ID:                  "banners",
			Label:               "Banners",
			Href:                "/admin/banners",
			RequiredPermissions: []string{"manage-banners"},
		},
		{
			ID:                  "orders",
			Label:               "Orders",
			Href:                "/admin/orders",
			RequiredPermissions: []string{"manage-orders"},
		},
		{
			ID:                  "inventory",
			Label:               "Inventory",
			Href:                "/admin/inventory",
			RequiredPermissions: []string{"manage-inventory"},
		},
		{
			ID:                  "roles",
			Label:               "Roles & Permissions",
			Href:                "/admin/roles",
			RequiredPermissions: []string{"manage-roles", "manage-permissions"},
		},
		{
			ID:    "settings",
			Label: "Settings",
			Submenu: []Item{
				{
					ID:                  "branches",
					Label:               "Branches",
					Href:                "/admin/settings/branches",
					RequiredPermissions: []string{"manage-branches"},
				},
				{
					ID:                  "suppliers",
					Label:               "Suppliers",
					Href:                "/admin/settings/suppliers",
					RequiredPermissions: []string{"manage-suppliers"},
				},
			},
		},
	}
}
