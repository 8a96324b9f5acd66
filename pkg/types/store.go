package types

// QuestionStore is the storage the importer writes through. Callers attach a
// backend, resolve categories and chapters by name, then insert questions
// one file at a time through a QuestionBatch.
type QuestionStore interface {
	// EnsureCategory returns the category with the given name, creating and
	// committing it first if it does not exist. created reports which
	// happened. Returns ErrInvalidName for an empty name.
	EnsureCategory(name string) (category *Category, created bool, err error)

	// EnsureChapter is EnsureCategory for the (category, name) pair.
	EnsureChapter(category, name string) (chapter *Chapter, created bool, err error)

	// BeginBatch opens the transaction that holds one file's questions.
	BeginBatch() (QuestionBatch, error)
}

// QuestionBatch collects question inserts in one transaction. A failed Insert
// leaves earlier inserts in the batch intact.
type QuestionBatch interface {
	// Insert stores q. An empty ID is generated and a zero CreatedAt is set
	// to the current time; both are written back to q.
	Insert(q *Question) error

	// Commit makes every successful insert durable.
	Commit() error

	// Rollback discards the batch. It is a no-op after Commit.
	Rollback() error
}
