package permissions

// PermissionDefinition describes a single, specific permission
type PermissionDefinition struct {
	Key         string `json:"key"`         // unique key, e.g., "combos.manage"
	Name        string `json:"name"`        // friendly name, e.g., "Manage Combos"
	Description string `json:"description"` // detailed description of what the permission allows
}

// PermissionGroupDefinition groups related permissions
type PermissionGroupDefinition struct {
	Key         string                 `json:"key"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Permissions []PermissionDefinition `json:"permissions"`
}

// Permission keys referenced by the route middleware.
const (
	ManageCombos        = "combos.manage"
	ManageAlbums        = "albums.manage"
	ManageSessions      = "sessions.manage"
	ManageDiscounts     = "discounts.manage"
	ManageOrders        = "orders.manage"
	ManagePhotographers = "photographers.manage"
	ManageUsers         = "users.manage"
	ManageRoles         = "roles.manage"
	UploadPhotos        = "photos.upload"
	ViewEarnings        = "earnings.view"
)

// DefinedPermissionGroups holds all statically defined permission groups and their permissions
var DefinedPermissionGroups = []PermissionGroupDefinition{
	{
		Key:         "catalog",
		Name:        "Catalog Management",
		Description: "Permissions related to managing the sales catalog.",
		Permissions: []PermissionDefinition{
			{
				Key:         ManageCombos,
				Name:        "Manage Combos",
				Description: "Allows creating, editing and deactivating photo combos.",
			},
			{
				Key:         ManageAlbums,
				Name:        "Manage Albums",
				Description: "Allows creating, editing and deleting albums and their tags.",
			},
			{
				Key:         ManageSessions,
				Name:        "Manage Photo Sessions",
				Description: "Allows creating, editing and deleting photo sessions.",
			},
			{
				Key:         ManageDiscounts,
				Name:        "Manage Discounts",
				Description: "Allows creating, editing and deactivating discount codes.",
			},
		},
	},
	{
		Key:         "content",
		Name:        "Content Management",
		Description: "Permissions related to photo content.",
		Permissions: []PermissionDefinition{
			{
				Key:         UploadPhotos,
				Name:        "Upload Photos",
				Description: "Allows uploading photo batches into sessions.",
			},
		},
	},
	{
		Key:         "sales",
		Name:        "Sales and Accounting",
		Description: "Permissions related to orders and photographer earnings.",
		Permissions: []PermissionDefinition{
			{
				Key:         ManageOrders,
				Name:        "Manage Orders",
				Description: "Allows listing orders and updating their payment and fulfillment status.",
			},
			{
				Key:         ViewEarnings,
				Name:        "View Earnings",
				Description: "Allows viewing earnings summaries and sales statistics.",
			},
		},
	},
	{
		Key:         "admin",
		Name:        "Administration",
		Description: "Permissions related to managing accounts.",
		Permissions: []PermissionDefinition{
			{
				Key:         ManagePhotographers,
				Name:        "Manage Photographers",
				Description: "Allows creating and editing photographer profiles and their commission rates.",
			},
			{
				Key:         ManageUsers,
				Name:        "Manage Users",
				Description: "Allows creating and editing user accounts and their permissions.",
			},
			{
				Key:         ManageRoles,
				Name:        "Manage Roles",
				Description: "Allows creating and editing roles and assigning them to users.",
			},
		},
	},
}

var (
	allPermissionKeysMap map[string]PermissionDefinition
	allPermissionKeys    []string
)

func init() {
	allPermissionKeysMap = make(map[string]PermissionDefinition)
	for _, group := range DefinedPermissionGroups {
		for _, perm := range group.Permissions {
			allPermissionKeysMap[perm.Key] = perm
			allPermissionKeys = append(allPermissionKeys, perm.Key)
		}
	}
}

// GetAllPermissionDefinitions returns a map of all defined permissions, keyed by their unique string key
func GetAllPermissionDefinitions() map[string]PermissionDefinition {
	return allPermissionKeysMap
}

// GetAllPermissionKeys returns a slice of all unique permission string keys
func GetAllPermissionKeys() []string {
	keys := make([]string, len(allPermissionKeys))
	copy(keys, allPermissionKeys)
	return keys
}

// IsValidPermissionKey checks if a given permission key is defined
func IsValidPermissionKey(key string) bool {
	_, ok := allPermissionKeysMap[key]
	return ok
}
