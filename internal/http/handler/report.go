package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"reportapi/internal/service"
)

// ListReports godoc
// @Summary Cursor-paginated report listing
// @Description With searchTerm and searchMode=all (default) every match is returned at once and no cursors are issued.
// @Tags reports
// @Produce json
// @Param lastEvaluatedKey query string false "Cursor of the next page"
// @Param previousEvaluatedKey query string false "Cursor of the previous page"
// @Param searchTerm query string false "Matches client RUC or invoice number"
// @Param searchMode query string false "all or page" default(all)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} map[string]model.ReportPage
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /reports [get]
func ListReports(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := 0
		if s := c.Query("limit"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
			}
			limit = n
		}

		page, err := svc.List(c.UserContext(), service.ReportQuery{
			Limit:          limit,
			Cursor:         c.Query("lastEvaluatedKey"),
			PreviousCursor: c.Query("previousEvaluatedKey"),
			SearchTerm:     c.Query("searchTerm"),
			SearchMode:     service.SearchMode(c.Query("searchMode")),
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": page})
	}
}
