package export_test

import (
	"archive/zip"
	"bytes"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/prasetya/wiki-management/internal"
	contentDatamodel "github.com/prasetya/wiki-management/internal/core/datamodel/content"
	"github.com/prasetya/wiki-management/internal/export"
	"github.com/prasetya/wiki-management/internal/permission"
)

func TestExport(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Export Suite")
}

type mockPageLister struct {
	pages []*contentDatamodel.Page
}

func (m *mockPageLister) ListPages() ([]*contentDatamodel.Page, error) {
	return m.pages, nil
}

var _ = Describe("ExportService", func() {
	var (
		lister  *mockPageLister
		service *export.Service
	)

	superadmin := &permission.Caller{ID: "root-1", Roles: []string{"superadmin"}}
	admin := &permission.Caller{ID: "admin-1", Roles: []string{"admin"}}

	BeforeEach(func() {
		lister = &mockPageLister{
			pages: []*contentDatamodel.Page{
				{ID: "p1", Title: "Welcome", Content: "Hello", CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)},
				{ID: "p2", Title: "Guides/Setup", Content: "Steps", CreatedAt: time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)},
			},
		}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = export.NewService(lister, logger)
	})

	It("rejects callers below superadmin", func() {
		_, err := service.ExportAllToZip(admin)
		Expect(err).To(Equal(internal.ErrAdminRequired))

		_, err = service.ExportAllToZip(nil)
		Expect(err).To(Equal(internal.ErrAdminRequired))
	})

	It("builds one markdown entry per page with front matter", func() {
		archive, err := service.ExportAllToZip(superadmin)
		Expect(err).NotTo(HaveOccurred())

		zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
		Expect(err).NotTo(HaveOccurred())
		Expect(zr.File).To(HaveLen(2))

		names := []string{zr.File[0].Name, zr.File[1].Name}
		Expect(names).To(ConsistOf("Welcome.md", "Guides_Setup.md"))

		rc, err := zr.File[0].Open()
		Expect(err).NotTo(HaveOccurred())
		defer rc.Close()
		body, err := io.ReadAll(rc)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(body)).To(HavePrefix("---\ntitle: "))
		Expect(string(body)).To(ContainSubstring("created_at: "))
	})

	It("produces an empty archive when there are no pages", func() {
		lister.pages = nil

		archive, err := service.ExportAllToZip(superadmin)
		Expect(err).NotTo(HaveOccurred())

		zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
		Expect(err).NotTo(HaveOccurred())
		Expect(zr.File).To(BeEmpty())
	})
})
