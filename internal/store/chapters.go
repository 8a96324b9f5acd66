package store

import (
	"database/sql"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/quizimport/pkg/types"
)

const selectChapter = `SELECT "id", "category", "name", "createdAt", "updatedAt"
FROM "Chapters" WHERE "category" = ? AND "name" = ?`

const insertChapter = `INSERT INTO "Chapters"
("id", "category", "name", "created_at", "createdAt", "updatedAt")
VALUES (?, ?, ?, ?, ?, ?)`

// GetChapter returns the chapter name within category, or ErrNotFound.
func (b *Backend) GetChapter(category, name string) (*types.Chapter, error) {
	db, err := b.conn()
	if err != nil {
		return nil, err
	}

	var ch types.Chapter
	var created, updated sql.NullString
	err = db.QueryRow(b.rebind(selectChapter), category, name).
		Scan(&ch.ID, &ch.Category, &ch.Name, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting chapter %q/%q: %w", category, name, err)
	}
	ch.CreatedAt = parseTime(created.String)
	ch.UpdatedAt = parseTime(updated.String)
	return &ch, nil
}

// EnsureChapter returns the chapter name within category, inserting it when
// the pair does not exist yet. The category itself is not checked: chapters
// reference it by name only.
func (b *Backend) EnsureChapter(category, name string) (*types.Chapter, bool, error) {
	if category == "" || name == "" {
		return nil, false, types.ErrInvalidName
	}

	ch, err := b.GetChapter(category, name)
	if err == nil {
		return ch, false, nil
	}
	if !errors.Is(err, types.ErrNotFound) {
		return nil, false, err
	}

	db, err := b.conn()
	if err != nil {
		return nil, false, err
	}

	now := b.timestamp()
	ch = &types.Chapter{
		ID:        generateUUID(),
		Category:  category,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	ts := formatTime(now)
	if _, err := db.Exec(b.rebind(insertChapter), ch.ID, ch.Category, ch.Name, ts, ts, ts); err != nil {
		return nil, false, fmt.Errorf("creating chapter %q/%q: %w", category, name, err)
	}

	logger.WithFields(logger.Fields{"category": category, "chapter": name, "id": ch.ID}).Debug("created chapter")
	return ch, true, nil
}
