package service

import (
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/photographer-catalog-api/internal/dto"
	appErrors "github.com/noah-isme/photographer-catalog-api/pkg/errors"
	"github.com/noah-isme/photographer-catalog-api/pkg/export"
)

type failingRenderer struct{}

func (failingRenderer) Render(export.Format, export.Dataset) ([]byte, error) {
	return nil, errors.New("disk full")
}

func newExportServiceForTest(t *testing.T) *ExportService {
	t.Helper()
	catalogSvc, _ := newLoadedCatalog(t)
	svc := NewExportService(catalogSvc, nil, "", nil)
	svc.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }
	return svc
}

func TestExportServiceCSV(t *testing.T) {
	svc := newExportServiceForTest(t)

	file, err := svc.Export(context.Background(), "", dto.CatalogQuery{SortBy: "price-low-high"})
	require.NoError(t, err)

	assert.Equal(t, "photographers-20250102-030405.csv", file.Filename)
	assert.Equal(t, export.FormatCSV.ContentType(), file.ContentType)
	assert.Equal(t, 3, file.Rows)

	rows, err := csv.NewReader(strings.NewReader(string(file.Body))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, exportHeaders, rows[0])
	assert.Equal(t, []string{"1", "Aarav Mehta", "Delhi", "₹5,000", "4.5", "Outdoor", "Candid", "2"}, rows[1])
	assert.Equal(t, "3", rows[3][0])
	assert.Equal(t, "Studio, Outdoor", rows[3][5])
}

func TestExportServiceFiltersRows(t *testing.T) {
	svc := newExportServiceForTest(t)

	file, err := svc.Export(context.Background(), "csv", dto.CatalogQuery{Styles: []string{"Studio"}})
	require.NoError(t, err)
	assert.Equal(t, 2, file.Rows)
}

func TestExportServiceXLSXAndPDF(t *testing.T) {
	svc := newExportServiceForTest(t)

	xlsx, err := svc.Export(context.Background(), "xlsx", dto.CatalogQuery{})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(xlsx.Filename, ".xlsx"))
	assert.Equal(t, "PK", string(xlsx.Body[:2]))

	pdf, err := svc.Export(context.Background(), "PDF", dto.CatalogQuery{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf.Body), "%PDF"))
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	svc := newExportServiceForTest(t)

	_, err := svc.Export(context.Background(), "docx", dto.CatalogQuery{})

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestExportServiceRenderFailure(t *testing.T) {
	catalogSvc, _ := newLoadedCatalog(t)
	svc := NewExportService(catalogSvc, failingRenderer{}, "Directory", nil)

	_, err := svc.Export(context.Background(), "csv", dto.CatalogQuery{})

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrInternal.Code, appErr.Code)
}

func TestExportServiceCatalogNotLoaded(t *testing.T) {
	svc := NewExportService(NewCatalogService(&sourceStub{}, nil, nil, CatalogServiceConfig{}, nil), nil, "", nil)

	_, err := svc.Export(context.Background(), "csv", dto.CatalogQuery{})
	assert.True(t, errors.Is(err, appErrors.ErrUnavailable))
}
