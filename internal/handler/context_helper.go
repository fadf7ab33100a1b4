package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/photographer-catalog-api/pkg/errors"
)

// photographerID reads the numeric :id path parameter.
func photographerID(c *gin.Context) (int64, error) {
	raw := strings.TrimSpace(c.Param("id"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid photographer id %q", raw))
	}
	return id, nil
}

// ParseStyles accepts styles as repeated query values, a comma separated
// list, or both. Blank entries are dropped.
func ParseStyles(values []string) []string {
	styles := make([]string, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				styles = append(styles, trimmed)
			}
		}
	}
	return styles
}

func invalidPayload(err error) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
}
