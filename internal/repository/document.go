// Package repository contains data access layer abstractions.
// Implementations live in subpackages (postgres, dynamo) inside this directory.
package repository

import (
	"context"

	"reportapi/internal/model"
)

// DocumentRepository persists metadata of ingested documents using SQL queries only.
type DocumentRepository interface {
	// Create inserts a new document record and returns the stored row.
	Create(ctx context.Context, doc *model.IngestedDocument) (*model.IngestedDocument, error)

	// FindByID returns a document by its ID.
	FindByID(ctx context.Context, id string) (*model.IngestedDocument, error)

	// List returns a page of documents, newest first, and the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.IngestedDocument], error)

	// Delete removes a document by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
type PageResult[T any] struct {
	Items []T
	Total int
}
