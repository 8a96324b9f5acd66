package store

import (
	"database/sql"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/quizimport/pkg/types"
)

const selectCategory = `SELECT "id", "name", "icon", "color", "description", "createdAt", "updatedAt"
FROM "Categories" WHERE "name" = ?`

const insertCategory = `INSERT INTO "Categories"
("id", "name", "icon", "color", "description", "created_at", "createdAt", "updatedAt")
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

// GetCategory returns the category with the exact given name, or ErrNotFound.
func (b *Backend) GetCategory(name string) (*types.Category, error) {
	db, err := b.conn()
	if err != nil {
		return nil, err
	}
	cat, err := hydrateCategory(db.QueryRow(b.rebind(selectCategory), name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting category %q: %w", name, err)
	}
	return cat, nil
}

// EnsureCategory returns the category named name, inserting it with the
// configured icon, color and description when it does not exist yet. The
// insert is committed before returning.
func (b *Backend) EnsureCategory(name string) (*types.Category, bool, error) {
	if name == "" {
		return nil, false, types.ErrInvalidName
	}

	cat, err := b.GetCategory(name)
	if err == nil {
		return cat, false, nil
	}
	if !errors.Is(err, types.ErrNotFound) {
		return nil, false, err
	}

	db, err := b.conn()
	if err != nil {
		return nil, false, err
	}

	now := b.timestamp()
	cat = &types.Category{
		ID:          generateUUID(),
		Name:        name,
		Icon:        b.style.Icon,
		Color:       b.style.Color,
		Description: b.style.DescribeCategory(name),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	ts := formatTime(now)
	if _, err := db.Exec(b.rebind(insertCategory),
		cat.ID, cat.Name, cat.Icon, cat.Color, cat.Description, ts, ts, ts,
	); err != nil {
		return nil, false, fmt.Errorf("creating category %q: %w", name, err)
	}

	logger.WithFields(logger.Fields{"category": name, "id": cat.ID}).Debug("created category")
	return cat, true, nil
}

// hydrateCategory converts a single row into a *types.Category. Display
// columns written by other tools may be NULL.
func hydrateCategory(row *sql.Row) (*types.Category, error) {
	var c types.Category
	var icon, color, desc, created, updated sql.NullString
	if err := row.Scan(&c.ID, &c.Name, &icon, &color, &desc, &created, &updated); err != nil {
		return nil, err
	}
	c.Icon = icon.String
	c.Color = color.String
	c.Description = desc.String
	c.CreatedAt = parseTime(created.String)
	c.UpdatedAt = parseTime(updated.String)
	return &c, nil
}
