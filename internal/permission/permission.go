package permission

// AccessLevel is an ordered capability over a folder or page.
type AccessLevel string

const (
	LevelView   AccessLevel = "VIEW"
	LevelEdit   AccessLevel = "EDIT"
	LevelManage AccessLevel = "MANAGE"
)

var levelRank = map[AccessLevel]int{
	LevelView:   1,
	LevelEdit:   2,
	LevelManage: 3,
}

// Valid reports whether the level is one of VIEW, EDIT or MANAGE.
func (l AccessLevel) Valid() bool {
	_, ok := levelRank[l]
	return ok
}

// AtLeast reports whether l satisfies the required level in the
// ordering VIEW < EDIT < MANAGE.
func (l AccessLevel) AtLeast(required AccessLevel) bool {
	return levelRank[l] >= levelRank[required]
}

type ObjectType string

const (
	ObjectFolder ObjectType = "FOLDER"
	ObjectPage   ObjectType = "PAGE"
)

func (t ObjectType) Valid() bool {
	return t == ObjectFolder || t == ObjectPage
}

type SubjectType string

const (
	SubjectUser SubjectType = "USER"
	SubjectRole SubjectType = "ROLE"
)

func (t SubjectType) Valid() bool {
	return t == SubjectUser || t == SubjectRole
}

// The four built-in roles. Seeded at bootstrap, never deletable or renamable.
const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
	RoleMember     = "member"
	RolePublic     = "public"
)

// Caller is the resolver's view of an authenticated user: identity plus
// the flat set of role slugs resolved at check time. A nil *Caller means
// the request is anonymous.
type Caller struct {
	ID    string
	Roles []string
}

func (c *Caller) HasRole(slug string) bool {
	if c == nil {
		return false
	}
	for _, r := range c.Roles {
		if r == slug {
			return true
		}
	}
	return false
}

// IsSuperAdmin reports whether the caller holds the superadmin role.
func (c *Caller) IsSuperAdmin() bool {
	return c.HasRole(RoleSuperAdmin)
}

// IsAdmin reports whether the caller holds the admin or superadmin role.
func (c *Caller) IsAdmin() bool {
	return c.HasRole(RoleAdmin) || c.HasRole(RoleSuperAdmin)
}

// Grant is one ACL entry as seen by the resolver and the sharing API.
type Grant struct {
	ID          string      `json:"id"`
	SubjectType SubjectType `json:"subject_type"`
	SubjectID   string      `json:"subject_id"`
	ObjectType  ObjectType  `json:"object_type"`
	ObjectID    string      `json:"object_id"`
	Level       AccessLevel `json:"level"`
}
