package settings_test

import (
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/prasetya/wiki-management/internal"
	settingDatamodel "github.com/prasetya/wiki-management/internal/core/datamodel/setting"
	"github.com/prasetya/wiki-management/internal/permission"
	"github.com/prasetya/wiki-management/internal/settings"
)

func TestSettings(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Settings Suite")
}

type mockSettingsRepository struct {
	records map[string]*settingDatamodel.Setting
}

func newMockSettingsRepository() *mockSettingsRepository {
	return &mockSettingsRepository{records: make(map[string]*settingDatamodel.Setting)}
}

func (m *mockSettingsRepository) Get(key string) (*settingDatamodel.Setting, error) {
	return m.records[key], nil
}

func (m *mockSettingsRepository) List() ([]*settingDatamodel.Setting, error) {
	var out []*settingDatamodel.Setting
	for _, r := range m.records {
		out = append(out, r)
	}
	return out, nil
}

func (m *mockSettingsRepository) Upsert(setting *settingDatamodel.Setting) error {
	m.records[setting.Key] = setting
	return nil
}

var _ = Describe("SettingsService", func() {
	var (
		repo    *mockSettingsRepository
		service *settings.Service
	)

	superadmin := &permission.Caller{ID: "root-1", Roles: []string{"superadmin"}}
	admin := &permission.Caller{ID: "admin-1", Roles: []string{"admin"}}

	BeforeEach(func() {
		repo = newMockSettingsRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = settings.NewService(repo, logger)
	})

	Describe("AllowZeroRoleUsers", func() {
		It("defaults to true when the row is absent", func() {
			allow, err := service.AllowZeroRoleUsers()
			Expect(err).NotTo(HaveOccurred())
			Expect(allow).To(BeTrue())
		})

		It("reads false from the stored value", func() {
			repo.records[settings.KeyAllowZeroRoleUsers] = &settingDatamodel.Setting{
				Key:   settings.KeyAllowZeroRoleUsers,
				Value: "false",
			}

			allow, err := service.AllowZeroRoleUsers()
			Expect(err).NotTo(HaveOccurred())
			Expect(allow).To(BeFalse())
		})
	})

	Describe("UpdateSetting", func() {
		It("upserts for superadmin", func() {
			setting, err := service.UpdateSetting(superadmin, settings.KeyAllowZeroRoleUsers, "false")
			Expect(err).NotTo(HaveOccurred())
			Expect(setting.Value).To(Equal("false"))

			allow, err := service.AllowZeroRoleUsers()
			Expect(err).NotTo(HaveOccurred())
			Expect(allow).To(BeFalse())
		})

		It("rejects admins that are not superadmin", func() {
			_, err := service.UpdateSetting(admin, settings.KeyAllowZeroRoleUsers, "false")
			Expect(err).To(Equal(internal.ErrAdminRequired))
		})

		It("rejects an empty key", func() {
			_, err := service.UpdateSetting(superadmin, "  ", "x")
			Expect(err).To(HaveOccurred())
		})
	})
})
