package types

// RunOptions holds the operator's answers to the setup prompts. It is built
// once per run and passed to every per-file step.
type RunOptions struct {
	SharedCategory bool
	CategoryName   string // Set when SharedCategory is true.
	CategoryID     string

	SharedChapter bool
	// ChapterCategory is the category that owns the shared chapter. It equals
	// CategoryName when the category is shared as well.
	ChapterCategory string
	ChapterName     string
	ChapterID       string

	AutoAdvance bool
}

// ImportResult counts the outcome of importing one file's questions.
type ImportResult struct {
	Total     int
	Succeeded int
	Failed    int
	Committed bool
}

// RunSummary counts the outcome of a whole run.
type RunSummary struct {
	FilesFound        int
	FilesProcessed    int // Files that reached the import step.
	FilesFailed       int // Files skipped by a parse error or an empty name.
	QuestionsImported int
	QuestionsFailed   int
	Halted            bool // The operator declined to continue.
}
