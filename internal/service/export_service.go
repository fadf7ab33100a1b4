package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/photographer-catalog-api/internal/dto"
	"github.com/noah-isme/photographer-catalog-api/internal/models"
	appErrors "github.com/noah-isme/photographer-catalog-api/pkg/errors"
	"github.com/noah-isme/photographer-catalog-api/pkg/export"
	"github.com/noah-isme/photographer-catalog-api/pkg/format"
)

var exportHeaders = []string{"ID", "Name", "Location", "Price", "Rating", "Styles", "Tags", "Reviews"}

type catalogViewer interface {
	View(ctx context.Context, query dto.CatalogQuery) ([]models.Photographer, models.FilterSpec, error)
}

type datasetRenderer interface {
	Render(format export.Format, data export.Dataset) ([]byte, error)
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
	Rows        int
}

// ExportService renders the filtered catalog view as a file.
type ExportService struct {
	catalog  catalogViewer
	renderer datasetRenderer
	title    string
	logger   *zap.Logger
	now      func() time.Time
}

// NewExportService constructs an ExportService. A nil renderer uses the
// default CSV, PDF and XLSX registry.
func NewExportService(catalog catalogViewer, renderer datasetRenderer, title string, logger *zap.Logger) *ExportService {
	if renderer == nil {
		renderer = export.NewRegistry()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if title == "" {
		title = "Photographer Directory"
	}
	return &ExportService{catalog: catalog, renderer: renderer, title: title, logger: logger, now: time.Now}
}

// Export renders every record matching query, in view order.
func (s *ExportService) Export(ctx context.Context, rawFormat string, query dto.CatalogQuery) (*ExportFile, error) {
	f, err := export.ParseFormat(rawFormat)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	view, spec, err := s.catalog.View(ctx, query)
	if err != nil {
		return nil, err
	}

	body, err := s.renderer.Render(f, s.dataset(view, spec))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	file := &ExportFile{
		Filename:    fmt.Sprintf("photographers-%s.%s", s.now().UTC().Format("20060102-150405"), f.Extension()),
		ContentType: f.ContentType(),
		Body:        body,
		Rows:        len(view),
	}
	s.logger.Info("catalog exported", zap.String("format", string(f)), zap.Int("rows", file.Rows))
	return file, nil
}

func (s *ExportService) dataset(view []models.Photographer, spec models.FilterSpec) export.Dataset {
	rows := make([]map[string]string, 0, len(view))
	for _, r := range view {
		rows = append(rows, map[string]string{
			"ID":       strconv.FormatInt(r.ID, 10),
			"Name":     r.Name,
			"Location": r.Location,
			"Price":    format.Price(r.Price),
			"Rating":   strconv.FormatFloat(r.Rating, 'f', 1, 64),
			"Styles":   strings.Join(r.Styles, ", "),
			"Tags":     strings.Join(r.Tags, ", "),
			"Reviews":  strconv.Itoa(len(r.Reviews)),
		})
	}
	return export.Dataset{
		Title:   fmt.Sprintf("%s (%s)", s.title, spec.SortBy),
		Headers: exportHeaders,
		Rows:    rows,
	}
}
