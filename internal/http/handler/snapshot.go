package handler

import (
	"github.com/gofiber/fiber/v2"

	"reportapi/internal/model"
	"reportapi/internal/service"
)

// SnapshotLookup godoc
// @Summary Search an exported column snapshot
// @Description Case-insensitive substring match over the values written by /athena/export.
// @Tags snapshots
// @Produce json
// @Param column path string true "Allow-listed column"
// @Param value query string false "Substring to match"
// @Success 200 {object} map[string][]string
// @Failure 404 {object} map[string]string
// @Router /athena/snapshot/{column} [get]
func SnapshotLookup(svc service.SnapshotService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return lookup(c, svc, c.Params("column"))
	}
}

// ColumnLookup serves a lookup pinned to one column, e.g. /clients/ruc.
func ColumnLookup(svc service.SnapshotService, column string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return lookup(c, svc, column)
	}
}

func lookup(c *fiber.Ctx, svc service.SnapshotService, column string) error {
	values, err := svc.Lookup(c.UserContext(), column, c.Query("value"))
	if err != nil {
		return writeLakeError(c, err)
	}
	if values == nil {
		values = []string{}
	}
	return c.JSON(fiber.Map{"data": values})
}

// snapshotRoutes are the fixed lookups kept for existing clients.
var snapshotRoutes = map[string]string{
	"/clients/ruc":  model.ColumnClientRUC,
	"/clients/name": model.ColumnClientName,
}
