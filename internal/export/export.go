package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/prasetya/wiki-management/internal"
	contentDatamodel "github.com/prasetya/wiki-management/internal/core/datamodel/content"
	"github.com/prasetya/wiki-management/internal/permission"
)

type PageLister interface {
	ListPages() ([]*contentDatamodel.Page, error)
}

// Service builds a ZIP backup of every page as a front-mattered markdown
// file. Superadmin only: the archive spans all content regardless of ACLs.
type Service struct {
	pages  PageLister
	logger *slog.Logger
}

func NewService(pages PageLister, logger *slog.Logger) *Service {
	return &Service{
		pages:  pages,
		logger: logger,
	}
}

func (s *Service) ExportAllToZip(caller *permission.Caller) ([]byte, error) {
	if !caller.IsSuperAdmin() {
		return nil, internal.ErrAdminRequired
	}

	pages, err := s.pages.ListPages()
	if err != nil {
		s.logger.Error("failed to load pages for export", "error", err)
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, page := range pages {
		filename := strings.ReplaceAll(page.Title, "/", "_") + ".md"
		body := fmt.Sprintf("---\ntitle: %s\ncreated_at: %s\n---\n\n%s",
			page.Title, page.CreatedAt.Format("2006-01-02T15:04:05Z07:00"), page.Content)

		f, err := zw.Create(filename)
		if err != nil {
			zw.Close()
			return nil, err
		}
		if _, err := f.Write([]byte(body)); err != nil {
			zw.Close()
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}

	s.logger.Info("export built", "page_count", len(pages), "bytes", buf.Len())
	return buf.Bytes(), nil
}
