package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"reportapi/internal/service"
)

// Services bundles the dependencies of the HTTP routes.
type Services struct {
	DB        *sql.DB
	Documents service.DocumentService
	Lake      service.LakeService
	Reports   service.ReportService
	Snapshots service.SnapshotService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers only translate between HTTP and the services.
func RegisterRoutes(app *fiber.App, s Services) {
	app.Get("/health", HealthCheck(s.DB))
	app.Get("/healthz", LivenessProbe())

	// Query engine
	app.Post("/consulta-athena", ExecuteQuery(s.Lake))
	app.Get("/consulta-athena", ExecuteQuery(s.Lake))
	app.Get("/athena/data", ListLakeRecords(s.Lake))
	app.Get("/athena/column", ColumnMatches(s.Lake))
	app.Post("/athena/export", ExportColumn(s.Lake))

	// Snapshots
	app.Get("/athena/snapshot/:column", SnapshotLookup(s.Snapshots))
	for path, column := range snapshotRoutes {
		app.Get(path, ColumnLookup(s.Snapshots, column))
	}

	// Key-value store
	app.Get("/reports", ListReports(s.Reports))

	// Document ingestion
	app.Get("/documents", ListDocuments(s.Documents))
	app.Post("/document", UploadDocument(s.Documents))
	app.Get("/document/:id", GetDocument(s.Documents))
	app.Delete("/document/:id", DeleteDocument(s.Documents))
}
