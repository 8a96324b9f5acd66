package store

import (
	"database/sql"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/quizimport/pkg/types"
)

const insertQuestion = `INSERT INTO "Questions"
("id", "category", "chapter", "text", "question", "type", "options", "answer",
 "correct_option_ids", "explanation", "created_at", "createdAt", "updatedAt")
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const selectQuestions = `SELECT "id", "category", "chapter", "text", "type", "options", "answer",
"correct_option_ids", "explanation", "createdAt"
FROM "Questions" WHERE "category" = ? AND "chapter" = ? ORDER BY "createdAt", "id"`

// savepoint isolates each insert so a failed statement leaves the
// transaction usable on PostgreSQL.
const savepoint = "question_insert"

var _ types.QuestionBatch = (*batch)(nil)

type batch struct {
	backend *Backend
	tx      *sql.Tx
	stmt    *sql.Stmt
	done    bool
}

// BeginBatch opens a transaction for one file's questions.
func (b *Backend) BeginBatch() (types.QuestionBatch, error) {
	db, err := b.conn()
	if err != nil {
		return nil, err
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning question batch: %w", err)
	}
	stmt, err := tx.Prepare(b.rebind(insertQuestion))
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("preparing question insert: %w", err)
	}
	return &batch{backend: b, tx: tx, stmt: stmt}, nil
}

// Insert writes q inside its own savepoint.
func (qb *batch) Insert(q *types.Question) error {
	if qb.done {
		return sql.ErrTxDone
	}
	if q.ID == "" {
		q.ID = generateUUID()
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = qb.backend.timestamp()
	}
	ts := formatTime(q.CreatedAt)

	if _, err := qb.tx.Exec("SAVEPOINT " + savepoint); err != nil {
		return fmt.Errorf("opening savepoint: %w", err)
	}
	_, err := qb.stmt.Exec(
		q.ID, q.Category, q.Chapter, q.Text, q.Text, q.Type, q.Options, q.Answer,
		q.CorrectOptionIDs, q.Explanation, ts, ts, ts,
	)
	if err != nil {
		if _, rbErr := qb.tx.Exec("ROLLBACK TO SAVEPOINT " + savepoint); rbErr != nil {
			return fmt.Errorf("inserting question: %w (rollback: %v)", err, rbErr)
		}
		if _, relErr := qb.tx.Exec("RELEASE SAVEPOINT " + savepoint); relErr != nil {
			logger.WithError(relErr).Debug("release of failed savepoint")
		}
		return fmt.Errorf("inserting question: %w", err)
	}
	if _, err := qb.tx.Exec("RELEASE SAVEPOINT " + savepoint); err != nil {
		return fmt.Errorf("releasing savepoint: %w", err)
	}
	return nil
}

func (qb *batch) Commit() error {
	if qb.done {
		return sql.ErrTxDone
	}
	qb.done = true
	qb.stmt.Close()
	if err := qb.tx.Commit(); err != nil {
		return fmt.Errorf("committing question batch: %w", err)
	}
	return nil
}

func (qb *batch) Rollback() error {
	if qb.done {
		return nil
	}
	qb.done = true
	qb.stmt.Close()
	return qb.tx.Rollback()
}

// ListQuestions returns the questions filed under category and chapter, oldest first.
func (b *Backend) ListQuestions(category, chapter string) ([]types.Question, error) {
	db, err := b.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(b.rebind(selectQuestions), category, chapter)
	if err != nil {
		return nil, fmt.Errorf("fetching questions: %w", err)
	}
	defer rows.Close()

	results := []types.Question{}
	for rows.Next() {
		var q types.Question
		var text, options, answer, ids, explanation, created sql.NullString
		if err := rows.Scan(&q.ID, &q.Category, &q.Chapter, &text, &q.Type, &options,
			&answer, &ids, &explanation, &created); err != nil {
			return nil, fmt.Errorf("hydrating question: %w", err)
		}
		q.Text = text.String
		q.Options = options.String
		q.Answer = answer.String
		q.CorrectOptionIDs = ids.String
		q.Explanation = explanation.String
		q.CreatedAt = parseTime(created.String)
		results = append(results, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating questions: %w", err)
	}
	return results, nil
}

// CountQuestions returns the number of rows in the Questions table.
func (b *Backend) CountQuestions() (int, error) {
	db, err := b.conn()
	if err != nil {
		return 0, err
	}
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM "Questions"`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting questions: %w", err)
	}
	return n, nil
}
