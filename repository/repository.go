// Package repository persists the domain entities through gorm. Every method
// takes a context and maps gorm.ErrRecordNotFound to apperrors.NotFoundError.
package repository

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"travelapp-backend/apperrors"
)

// Page selects a 1-based page of Size rows. A zero Size returns every row.
type Page struct {
	Number int
	Size   int
}

func (p Page) apply(db *gorm.DB) *gorm.DB {
	if p.Size <= 0 {
		return db
	}
	number := p.Number
	if number < 1 {
		number = 1
	}
	return db.Offset((number - 1) * p.Size).Limit(p.Size)
}

// ListOptions carries the paging and the requested ordering, e.g. "-price".
type ListOptions struct {
	Page     Page
	Ordering string
}

// ListResult is one page of rows plus the total matching count.
type ListResult[T any] struct {
	Items []T
	Count int64
}

// orderClause translates a comma separated ordering request into SQL using only
// the allowed fields; unknown fields are ignored. The default ordering is
// always appended.
func orderClause(requested string, allowed map[string]string, fallback string) string {
	var parts []string
	for _, field := range strings.Split(requested, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		direction := "ASC"
		if strings.HasPrefix(field, "-") {
			direction = "DESC"
			field = field[1:]
		}
		column, ok := allowed[field]
		if !ok {
			continue
		}
		parts = append(parts, column+" "+direction)
	}
	parts = append(parts, fallback)
	return strings.Join(parts, ", ")
}

func notFound(err error, entity string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(entity, id)
	}
	return fmt.Errorf("load %s #%d: %w", entity, id, err)
}
