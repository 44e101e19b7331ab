package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"reportapi/internal/model"
	"reportapi/internal/service"
)

type queryRequest struct {
	Query string `json:"query"`
}

// ExecuteQuery godoc
// @Summary Run a SQL statement on the query engine
// @Description Blocks until the execution finishes. Rows are arrays of nullable strings, header excluded.
// @Tags athena
// @Accept json
// @Produce json
// @Param body body queryRequest false "Statement (POST)"
// @Param query query string false "Statement (GET)"
// @Success 200 {array} model.Row
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Failure 504 {object} map[string]string
// @Router /consulta-athena [post]
func ExecuteQuery(svc service.LakeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := queryRequest{Query: c.Query("query")}
		if c.Method() == fiber.MethodPost && len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
			}
		}
		if strings.TrimSpace(req.Query) == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Query is required"})
		}

		rows, err := svc.RawQuery(c.UserContext(), req.Query)
		if err != nil {
			return writeLakeError(c, err)
		}
		if rows == nil {
			rows = []model.Row{}
		}
		return c.JSON(rows)
	}
}

// lakeFailure is the error body of the paginated listing.
func lakeFailure(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "message": message})
}

// ListLakeRecords godoc
// @Summary Paginated lake listing
// @Tags athena
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Param filter_column query string false "client_ruc, document_number, document_location or client_name"
// @Param filter_value query string false "Substring to match"
// @Param status query string false "Exact status"
// @Success 200 {object} model.PaginatedRecords
// @Failure 400 {object} map[string]any
// @Failure 500 {object} map[string]any
// @Failure 504 {object} map[string]any
// @Router /athena/data [get]
func ListLakeRecords(svc service.LakeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := strconv.Atoi(c.Query("page", "1"))
		if err != nil {
			return lakeFailure(c, fiber.StatusBadRequest, "invalid page")
		}
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return lakeFailure(c, fiber.StatusBadRequest, "invalid limit")
		}

		res, err := svc.Paginate(c.UserContext(), model.PaginationRequest{
			Page:         page,
			Limit:        limit,
			FilterColumn: c.Query("filter_column"),
			FilterValue:  c.Query("filter_value"),
			Status:       c.Query("status"),
		})
		if err != nil {
			status, _ := classify(err)
			return lakeFailure(c, status, err.Error())
		}

		data := res.Data
		if data == nil {
			data = []model.Record{}
		}
		return c.JSON(fiber.Map{
			"success":    true,
			"data":       data,
			"pagination": res.Pagination,
		})
	}
}

// ColumnMatches godoc
// @Summary First values of a column containing a substring
// @Tags athena
// @Produce json
// @Param column query string true "Allow-listed column"
// @Param value query string false "Substring to match"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Router /athena/column [get]
func ColumnMatches(svc service.LakeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		records, err := svc.ColumnMatches(c.UserContext(), c.Query("column"), c.Query("value"))
		if err != nil {
			return writeLakeError(c, err)
		}
		if records == nil {
			records = []model.Record{}
		}
		return c.JSON(fiber.Map{"data": records})
	}
}

// ExportColumn godoc
// @Summary Export the distinct values of a column to a snapshot
// @Tags athena
// @Produce json
// @Param column query string true "Allow-listed column"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Router /athena/export [post]
func ExportColumn(svc service.LakeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		column := c.Query("column")
		n, err := svc.ExportColumn(c.UserContext(), column)
		if err != nil {
			return writeLakeError(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "column": column, "count": n})
	}
}
