package postgres_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/prasetya/wiki-management/internal/content"
	contentPostgres "github.com/prasetya/wiki-management/internal/content/postgres"
	contentDatamodel "github.com/prasetya/wiki-management/internal/core/datamodel/content"
)

func TestContentPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Content Postgres Suite")
}

// Schema mirrors db/migrations/00002 rather than AutoMigrate, so drift
// between the model tags and the migration DDL fails here.
var contentDDL = []string{
	`CREATE TABLE folders (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		parent_id TEXT REFERENCES folders (id),
		is_public BOOLEAN NOT NULL DEFAULT false,
		sort_order INTEGER NOT NULL DEFAULT 0,
		deleted_at TIMESTAMP,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX idx_folders_parent_id ON folders (parent_id)`,
	`CREATE TABLE pages (
		id TEXT PRIMARY KEY,
		folder_id TEXT REFERENCES folders (id),
		title TEXT NOT NULL,
		content TEXT NOT NULL DEFAULT '',
		banner_url TEXT,
		parent_page_id TEXT REFERENCES pages (id),
		is_public BOOLEAN NOT NULL DEFAULT false,
		author_id TEXT NOT NULL,
		sort_order INTEGER NOT NULL DEFAULT 0,
		deleted_at TIMESTAMP,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX idx_pages_folder_id ON pages (folder_id)`,
	`CREATE INDEX idx_pages_deleted_at ON pages (deleted_at)`,
}

var _ = Describe("Content Repository", func() {
	var (
		db   *gorm.DB
		repo content.RepositoryAPI
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		for _, stmt := range contentDDL {
			Expect(db.Exec(stmt).Error).NotTo(HaveOccurred())
		}

		repo = contentPostgres.NewContentRepository(db)
	})

	Describe("pages", func() {
		It("creates and fetches a page", func() {
			page := &contentDatamodel.Page{ID: "page-1", Title: "Welcome", Content: "Hello"}
			Expect(repo.CreatePage(page)).To(Succeed())

			got, err := repo.GetPage("page-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Title).To(Equal("Welcome"))
		})

		It("returns nil for missing pages", func() {
			got, err := repo.GetPage("nope")
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(BeNil())
		})

		It("excludes soft-deleted pages from listings", func() {
			Expect(repo.CreatePage(&contentDatamodel.Page{ID: "alive", Title: "Alive"})).To(Succeed())
			Expect(repo.CreatePage(&contentDatamodel.Page{ID: "dead", Title: "Dead"})).To(Succeed())
			Expect(repo.SoftDeletePage("dead", time.Now())).To(Succeed())

			pages, err := repo.ListPages()
			Expect(err).NotTo(HaveOccurred())
			Expect(pages).To(HaveLen(1))
			Expect(pages[0].ID).To(Equal("alive"))
		})
	})

	Describe("SearchPages", func() {
		BeforeEach(func() {
			Expect(repo.CreatePage(&contentDatamodel.Page{ID: "p1", Title: "Release Notes", Content: "deploy steps"})).To(Succeed())
			Expect(repo.CreatePage(&contentDatamodel.Page{ID: "p2", Title: "Onboarding", Content: "release checklist"})).To(Succeed())
			Expect(repo.CreatePage(&contentDatamodel.Page{ID: "p3", Title: "Unrelated", Content: "nothing"})).To(Succeed())
		})

		It("matches title and content", func() {
			pages, err := repo.SearchPages("release")
			Expect(err).NotTo(HaveOccurred())
			Expect(pages).To(HaveLen(2))
		})

		It("excludes soft-deleted matches", func() {
			Expect(repo.SoftDeletePage("p1", time.Now())).To(Succeed())

			pages, err := repo.SearchPages("release")
			Expect(err).NotTo(HaveOccurred())
			Expect(pages).To(HaveLen(1))
			Expect(pages[0].ID).To(Equal("p2"))
		})
	})

	Describe("SoftDeleteFolderCascade", func() {
		It("marks the folder and its non-deleted pages with the same timestamp", func() {
			folderID := "folder-1"
			Expect(repo.CreateFolder(&contentDatamodel.Folder{ID: folderID, Name: "Docs"})).To(Succeed())
			Expect(repo.CreatePage(&contentDatamodel.Page{ID: "in-1", Title: "In", FolderID: &folderID})).To(Succeed())
			Expect(repo.CreatePage(&contentDatamodel.Page{ID: "in-2", Title: "In Too", FolderID: &folderID})).To(Succeed())
			Expect(repo.CreatePage(&contentDatamodel.Page{ID: "out", Title: "Out"})).To(Succeed())

			deletedAt := time.Now()
			Expect(repo.SoftDeleteFolderCascade(folderID, deletedAt)).To(Succeed())

			folders, err := repo.ListFolders()
			Expect(err).NotTo(HaveOccurred())
			Expect(folders).To(BeEmpty())

			pages, err := repo.ListPages()
			Expect(err).NotTo(HaveOccurred())
			Expect(pages).To(HaveLen(1))
			Expect(pages[0].ID).To(Equal("out"))

			in1, err := repo.GetPage("in-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(in1.DeletedAt).NotTo(BeNil())
		})
	})
})
