package permission_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/prasetya/wiki-management/internal/permission"
)

func TestPermission(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Permission Suite")
}

// Mock store for testing
type mockStore struct {
	folders     map[string]*permission.ObjectInfo
	pages       map[string]*permission.ObjectInfo
	grants      []permission.Grant
	lookupError error
	grantsError error
}

func newMockStore() *mockStore {
	return &mockStore{
		folders: make(map[string]*permission.ObjectInfo),
		pages:   make(map[string]*permission.ObjectInfo),
	}
}

func (m *mockStore) GetFolderInfo(id string) (*permission.ObjectInfo, error) {
	if m.lookupError != nil {
		return nil, m.lookupError
	}
	return m.folders[id], nil
}

func (m *mockStore) GetPageInfo(id string) (*permission.ObjectInfo, error) {
	if m.lookupError != nil {
		return nil, m.lookupError
	}
	return m.pages[id], nil
}

func (m *mockStore) GrantsForObject(objectType permission.ObjectType, objectID string, userID string, roleIDs []string) ([]permission.Grant, error) {
	if m.grantsError != nil {
		return nil, m.grantsError
	}

	roleSet := make(map[string]bool, len(roleIDs))
	for _, r := range roleIDs {
		roleSet[r] = true
	}

	var matched []permission.Grant
	for _, g := range m.grants {
		if g.ObjectType != objectType || g.ObjectID != objectID {
			continue
		}
		if g.SubjectType == permission.SubjectUser && g.SubjectID == userID {
			matched = append(matched, g)
		}
		if g.SubjectType == permission.SubjectRole && roleSet[g.SubjectID] {
			matched = append(matched, g)
		}
	}
	return matched, nil
}

func strPtr(s string) *string { return &s }

var _ = Describe("Resolver", func() {
	var (
		store    *mockStore
		resolver *permission.Resolver
		logger   *slog.Logger
	)

	member := &permission.Caller{ID: "user-1", Roles: []string{"member"}}
	superadmin := &permission.Caller{ID: "root-1", Roles: []string{"superadmin"}}

	BeforeEach(func() {
		store = newMockStore()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		resolver = permission.NewResolver(store, logger)
	})

	Describe("public objects", func() {
		BeforeEach(func() {
			store.pages["page-pub"] = &permission.ObjectInfo{IsPublic: true}
		})

		It("allows VIEW for anonymous callers", func() {
			Expect(resolver.CheckPermission(nil, "page-pub", permission.ObjectPage, permission.LevelView)).To(BeTrue())
		})

		It("allows VIEW for authenticated callers without grants", func() {
			Expect(resolver.CheckPermission(member, "page-pub", permission.ObjectPage, permission.LevelView)).To(BeTrue())
		})

		It("does not allow EDIT just because the object is public", func() {
			Expect(resolver.CheckPermission(member, "page-pub", permission.ObjectPage, permission.LevelEdit)).To(BeFalse())
		})

		It("denies EDIT for anonymous callers on public objects", func() {
			Expect(resolver.CheckPermission(nil, "page-pub", permission.ObjectPage, permission.LevelEdit)).To(BeFalse())
		})
	})

	Describe("anonymous callers", func() {
		It("denies everything on private objects", func() {
			store.pages["page-1"] = &permission.ObjectInfo{}
			Expect(resolver.CheckPermission(nil, "page-1", permission.ObjectPage, permission.LevelView)).To(BeFalse())
		})

		It("does not walk into the folder chain", func() {
			store.folders["folder-pub"] = &permission.ObjectInfo{IsPublic: true}
			store.pages["page-1"] = &permission.ObjectInfo{FolderID: strPtr("folder-pub")}
			Expect(resolver.CheckPermission(nil, "page-1", permission.ObjectPage, permission.LevelView)).To(BeFalse())
		})
	})

	Describe("superadmin", func() {
		It("is allowed any level on any object", func() {
			store.pages["page-1"] = &permission.ObjectInfo{}
			Expect(resolver.CheckPermission(superadmin, "page-1", permission.ObjectPage, permission.LevelManage)).To(BeTrue())
		})

		It("is allowed even when the object does not exist", func() {
			Expect(resolver.CheckPermission(superadmin, "no-such-page", permission.ObjectPage, permission.LevelManage)).To(BeTrue())
		})
	})

	Describe("direct grants", func() {
		BeforeEach(func() {
			store.pages["page-1"] = &permission.ObjectInfo{}
		})

		It("allows the granted level and below", func() {
			store.grants = []permission.Grant{
				{SubjectType: permission.SubjectUser, SubjectID: "user-1", ObjectType: permission.ObjectPage, ObjectID: "page-1", Level: permission.LevelEdit},
			}
			Expect(resolver.CheckPermission(member, "page-1", permission.ObjectPage, permission.LevelView)).To(BeTrue())
			Expect(resolver.CheckPermission(member, "page-1", permission.ObjectPage, permission.LevelEdit)).To(BeTrue())
			Expect(resolver.CheckPermission(member, "page-1", permission.ObjectPage, permission.LevelManage)).To(BeFalse())
		})

		It("matches grants through any of the caller's roles", func() {
			store.grants = []permission.Grant{
				{SubjectType: permission.SubjectRole, SubjectID: "member", ObjectType: permission.ObjectPage, ObjectID: "page-1", Level: permission.LevelView},
			}
			Expect(resolver.CheckPermission(member, "page-1", permission.ObjectPage, permission.LevelView)).To(BeTrue())
			Expect(resolver.CheckPermission(member, "page-1", permission.ObjectPage, permission.LevelEdit)).To(BeFalse())
		})

		It("takes the maximum of overlapping grants", func() {
			store.grants = []permission.Grant{
				{SubjectType: permission.SubjectRole, SubjectID: "member", ObjectType: permission.ObjectPage, ObjectID: "page-1", Level: permission.LevelView},
				{SubjectType: permission.SubjectUser, SubjectID: "user-1", ObjectType: permission.ObjectPage, ObjectID: "page-1", Level: permission.LevelManage},
			}
			Expect(resolver.CheckPermission(member, "page-1", permission.ObjectPage, permission.LevelManage)).To(BeTrue())
		})

		It("ignores grants for other users and roles", func() {
			store.grants = []permission.Grant{
				{SubjectType: permission.SubjectUser, SubjectID: "someone-else", ObjectType: permission.ObjectPage, ObjectID: "page-1", Level: permission.LevelManage},
				{SubjectType: permission.SubjectRole, SubjectID: "editors", ObjectType: permission.ObjectPage, ObjectID: "page-1", Level: permission.LevelManage},
			}
			Expect(resolver.CheckPermission(member, "page-1", permission.ObjectPage, permission.LevelView)).To(BeFalse())
		})
	})

	Describe("inheritance", func() {
		It("inherits from the containing folder", func() {
			store.folders["folder-1"] = &permission.ObjectInfo{}
			store.pages["page-1"] = &permission.ObjectInfo{FolderID: strPtr("folder-1")}
			store.grants = []permission.Grant{
				{SubjectType: permission.SubjectUser, SubjectID: "user-1", ObjectType: permission.ObjectFolder, ObjectID: "folder-1", Level: permission.LevelEdit},
			}

			Expect(resolver.CheckPermission(member, "page-1", permission.ObjectPage, permission.LevelEdit)).To(BeTrue())
		})

		It("inherits through multiple folder ancestors", func() {
			store.folders["grandparent"] = &permission.ObjectInfo{}
			store.folders["parent"] = &permission.ObjectInfo{ParentID: strPtr("grandparent")}
			store.folders["child"] = &permission.ObjectInfo{ParentID: strPtr("parent")}
			store.pages["page-1"] = &permission.ObjectInfo{FolderID: strPtr("child")}
			store.grants = []permission.Grant{
				{SubjectType: permission.SubjectRole, SubjectID: "member", ObjectType: permission.ObjectFolder, ObjectID: "grandparent", Level: permission.LevelManage},
			}

			Expect(resolver.CheckPermission(member, "page-1", permission.ObjectPage, permission.LevelManage)).To(BeTrue())
		})

		It("allows VIEW on a private page inside a public folder for authenticated callers", func() {
			store.folders["folder-pub"] = &permission.ObjectInfo{IsPublic: true}
			store.pages["page-1"] = &permission.ObjectInfo{FolderID: strPtr("folder-pub")}

			Expect(resolver.CheckPermission(member, "page-1", permission.ObjectPage, permission.LevelView)).To(BeTrue())
		})

		It("denies when no level anywhere in the chain suffices", func() {
			store.folders["parent"] = &permission.ObjectInfo{}
			store.folders["child"] = &permission.ObjectInfo{ParentID: strPtr("parent")}
			store.pages["page-1"] = &permission.ObjectInfo{FolderID: strPtr("child")}
			store.grants = []permission.Grant{
				{SubjectType: permission.SubjectUser, SubjectID: "user-1", ObjectType: permission.ObjectFolder, ObjectID: "parent", Level: permission.LevelView},
			}

			Expect(resolver.CheckPermission(member, "page-1", permission.ObjectPage, permission.LevelEdit)).To(BeFalse())
		})

		It("terminates on a stored parent cycle", func() {
			store.folders["a"] = &permission.ObjectInfo{ParentID: strPtr("b")}
			store.folders["b"] = &permission.ObjectInfo{ParentID: strPtr("a")}

			Expect(resolver.CheckPermission(member, "a", permission.ObjectFolder, permission.LevelView)).To(BeFalse())
		})
	})

	Describe("failure behavior", func() {
		It("denies on lookup errors instead of failing", func() {
			store.lookupError = errors.New("db down")
			Expect(resolver.CheckPermission(member, "page-1", permission.ObjectPage, permission.LevelView)).To(BeFalse())
		})

		It("denies on grant query errors instead of failing", func() {
			store.pages["page-1"] = &permission.ObjectInfo{}
			store.grantsError = errors.New("db down")
			Expect(resolver.CheckPermission(member, "page-1", permission.ObjectPage, permission.LevelView)).To(BeFalse())
		})

		It("denies for missing objects without superadmin", func() {
			Expect(resolver.CheckPermission(member, "no-such-page", permission.ObjectPage, permission.LevelView)).To(BeFalse())
		})
	})
})
