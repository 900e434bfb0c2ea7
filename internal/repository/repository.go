package repository

import "errors"

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.

// ErrBookMissing is returned when a write references a book that does not
// exist (surfaced by the reviews foreign key, so the check holds even when
// the book is deleted concurrently).
var ErrBookMissing = errors.New("referenced book does not exist")

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
