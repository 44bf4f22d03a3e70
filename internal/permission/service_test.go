package permission_test

import (
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/prasetya/wiki-management/internal"
	permissionDatamodel "github.com/prasetya/wiki-management/internal/core/datamodel/permission"
	"github.com/prasetya/wiki-management/internal/permission"
)

// mockRepository layers the grant CRUD surface over mockStore.
type mockRepository struct {
	*mockStore
	created []*permissionDatamodel.Permission
	records map[string]*permissionDatamodel.Permission
	deleted []string
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		mockStore: newMockStore(),
		records:   make(map[string]*permissionDatamodel.Permission),
	}
}

func (m *mockRepository) CreateGrant(grant *permissionDatamodel.Permission) error {
	m.created = append(m.created, grant)
	m.records[grant.ID] = grant
	return nil
}

func (m *mockRepository) GetGrant(id string) (*permissionDatamodel.Permission, error) {
	return m.records[id], nil
}

func (m *mockRepository) DeleteGrant(id string) error {
	m.deleted = append(m.deleted, id)
	delete(m.records, id)
	return nil
}

func (m *mockRepository) ListObjectGrants(objectType permission.ObjectType, objectID string) ([]permission.Grant, error) {
	var out []permission.Grant
	for _, g := range m.grants {
		if g.ObjectType == objectType && g.ObjectID == objectID {
			out = append(out, g)
		}
	}
	return out, nil
}

var _ = Describe("PermissionService", func() {
	var (
		repo    *mockRepository
		service *permission.Service
	)

	manager := &permission.Caller{ID: "manager-1", Roles: []string{"member"}}
	bystander := &permission.Caller{ID: "bystander-1", Roles: []string{"member"}}

	BeforeEach(func() {
		repo = newMockRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = permission.NewService(repo, permission.NewResolver(repo, logger), logger)

		repo.pages["page-1"] = &permission.ObjectInfo{}
		repo.grants = []permission.Grant{
			{SubjectType: permission.SubjectUser, SubjectID: "manager-1", ObjectType: permission.ObjectPage, ObjectID: "page-1", Level: permission.LevelManage},
		}
	})

	Describe("GrantAccess", func() {
		It("creates a grant when the caller manages the object", func() {
			grant, err := service.GrantAccess(manager, permission.GrantAccessDTO{
				SubjectType: permission.SubjectUser,
				SubjectID:   "someone",
				ObjectType:  permission.ObjectPage,
				ObjectID:    "page-1",
				Level:       permission.LevelView,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(grant.ID).NotTo(BeEmpty())
			Expect(repo.created).To(HaveLen(1))
		})

		It("rejects callers without MANAGE on the object", func() {
			_, err := service.GrantAccess(bystander, permission.GrantAccessDTO{
				SubjectType: permission.SubjectUser,
				SubjectID:   "someone",
				ObjectType:  permission.ObjectPage,
				ObjectID:    "page-1",
				Level:       permission.LevelView,
			})
			Expect(err).To(Equal(internal.ErrInsufficientLevel))
		})

		It("rejects invalid levels", func() {
			_, err := service.GrantAccess(manager, permission.GrantAccessDTO{
				SubjectType: permission.SubjectUser,
				SubjectID:   "someone",
				ObjectType:  permission.ObjectPage,
				ObjectID:    "page-1",
				Level:       permission.AccessLevel("OWNER"),
			})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("RevokeAccess", func() {
		BeforeEach(func() {
			repo.records["grant-1"] = &permissionDatamodel.Permission{
				ID:         "grant-1",
				ObjectType: string(permission.ObjectPage),
				ObjectID:   "page-1",
			}
		})

		It("deletes the grant when the caller manages the object", func() {
			Expect(service.RevokeAccess(manager, "grant-1")).To(Succeed())
			Expect(repo.deleted).To(ContainElement("grant-1"))
		})

		It("rejects callers without MANAGE", func() {
			Expect(service.RevokeAccess(bystander, "grant-1")).To(Equal(internal.ErrInsufficientLevel))
		})

		It("returns not found for unknown grants", func() {
			err := service.RevokeAccess(manager, "no-such-grant")
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeNotFound))
		})
	})

	Describe("ListObjectGrants", func() {
		It("returns grants for managers", func() {
			grants, err := service.ListObjectGrants(manager, permission.ObjectPage, "page-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(grants).To(HaveLen(1))
		})

		It("rejects callers without MANAGE", func() {
			_, err := service.ListObjectGrants(bystander, permission.ObjectPage, "page-1")
			Expect(err).To(Equal(internal.ErrInsufficientLevel))
		})
	})
})
