package types

import (
	"errors"
	"time"
)

// Question type tags. Files may carry any string; these are the ones the
// quiz application renders.
const (
	QuestionSingleChoice   = "single_choice"
	QuestionMultipleChoice = "multiple_choice"
)

// DefaultQuestionType is assigned when a question object has no type field.
const DefaultQuestionType = QuestionSingleChoice

// Category is the top-level grouping of chapters, looked up by unique name.
type Category struct {
	ID          string // UUID, generated on creation.
	Name        string // Unique, operator-chosen.
	Icon        string
	Color       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Chapter subdivides a category. Name is unique within Category.
type Chapter struct {
	ID        string
	Category  string // Owning category name, not its ID.
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Question is a single quiz item ready for insertion. Category and Chapter
// hold names; the storage layer does not enforce them as references.
type Question struct {
	ID               string
	Category         string
	Chapter          string
	Text             string // Stored in both the text and question columns.
	Type             string
	Options          string // JSON text of the ordered option list.
	Answer           string // Correct answers joined with ",".
	CorrectOptionIDs string // JSON list of the correct answers.
	Explanation      string
	CreatedAt        time.Time
}

// Entity errors.
var (
	ErrInvalidName = errors.New("name must not be empty")
	ErrNotFound    = errors.New("entity not found")
)
