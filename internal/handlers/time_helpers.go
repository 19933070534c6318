package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/production-board/internal/timezone"
)

// --------------------------------------------------
// Viewer timezone
// --------------------------------------------------

// viewerTimezone reads the browser's IANA zone from ?tz or X-Timezone. An
// unknown zone is dropped so the server default applies.
func viewerTimezone(c *gin.Context) string {
	tz := strings.TrimSpace(c.Query("tz"))
	if tz == "" {
		tz = strings.TrimSpace(c.GetHeader("X-Timezone"))
	}
	if !timezone.IsValid(tz) {
		return ""
	}
	return tz
}

// --------------------------------------------------
// Month query
// --------------------------------------------------

// monthQuery parses ?year&month. Both absent yields zeros; anything else
// out of range is rejected.
func monthQuery(c *gin.Context) (year, month int, ok bool) {
	yearStr := c.Query("year")
	monthStr := c.Query("month")

	if yearStr == "" && monthStr == "" {
		return 0, 0, true
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		return 0, 0, false
	}
	month, err = strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, month, true
}

func boolQuery(c *gin.Context, key string) bool {
	v, _ := strconv.ParseBool(c.Query(key))
	return v
}
