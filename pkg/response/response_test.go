package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/photographer-catalog-api/internal/models"
	appErrors "github.com/noah-isme/photographer-catalog-api/pkg/errors"
)

func testContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func TestJSONWithPagination(t *testing.T) {
	c, w := testContext()

	JSON(c, http.StatusOK, []string{"a"}, &models.PageMetadata{CurrentPage: 1, ItemsPerPage: 12, TotalItems: 1, TotalPages: 1}, map[string]interface{}{"reset_page": false})

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.Equal(t, float64(12), body["pagination"].(map[string]interface{})["itemsPerPage"])
	assert.Equal(t, false, body["meta"].(map[string]interface{})["reset_page"])
}

func TestErrorUsesAppErrorStatus(t *testing.T) {
	c, w := testContext()

	Error(c, appErrors.Clone(appErrors.ErrNotFound, "photographer not found"))
	assert.Equal(t, http.StatusNotFound, w.Code)

	c, w = testContext()
	Error(c, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Header().Get("Retry-After"))
}

func TestErrorSetsRetryAfterForTransientFailures(t *testing.T) {
	c, w := testContext()

	Error(c, appErrors.ErrUnavailable)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "5", w.Header().Get("Retry-After"))
}

func TestAttachment(t *testing.T) {
	c, w := testContext()

	Attachment(c, "photographers.csv", "text/csv", []byte("a,b\n"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="photographers.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, "a,b\n", w.Body.String())
}
