package store

import "fmt"

// The quiz application owns these tables. The DDL below is a bootstrap for
// development databases and tests; it never alters an existing table.
const (
	createCategories = `CREATE TABLE IF NOT EXISTS "Categories" (
    "id" TEXT PRIMARY KEY,
    "name" TEXT NOT NULL UNIQUE,
    "icon" TEXT,
    "color" TEXT,
    "description" TEXT,
    "created_at" TEXT,
    "createdAt" TEXT NOT NULL,
    "updatedAt" TEXT NOT NULL
);`

	createChapters = `CREATE TABLE IF NOT EXISTS "Chapters" (
    "id" TEXT PRIMARY KEY,
    "category" TEXT NOT NULL,
    "name" TEXT NOT NULL,
    "created_at" TEXT,
    "createdAt" TEXT NOT NULL,
    "updatedAt" TEXT NOT NULL,
    UNIQUE ("category", "name")
);`

	createQuestions = `CREATE TABLE IF NOT EXISTS "Questions" (
    "id" TEXT PRIMARY KEY,
    "category" TEXT NOT NULL,
    "chapter" TEXT NOT NULL,
    "text" TEXT,
    "question" TEXT,
    "type" TEXT NOT NULL,
    "options" TEXT,
    "answer" TEXT,
    "correct_option_ids" TEXT,
    "explanation" TEXT,
    "created_at" TEXT,
    "createdAt" TEXT NOT NULL,
    "updatedAt" TEXT NOT NULL
);`

	idxQuestionsCategoryChapter = `CREATE INDEX IF NOT EXISTS "idx_questions_category_chapter" ON "Questions" ("category", "chapter");`
)

// schemaDDL lists the bootstrap statements in execution order.
var schemaDDL = []string{
	createCategories,
	createChapters,
	createQuestions,
	idxQuestionsCategoryChapter,
}

// CreateSchema creates any missing tables. Existing tables are left as they are.
func (b *Backend) CreateSchema() error {
	db, err := b.conn()
	if err != nil {
		return err
	}
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	return nil
}
