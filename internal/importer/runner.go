package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/quizimport/internal/bank"
	"github.com/mesh-intelligence/quizimport/internal/console"
	"github.com/mesh-intelligence/quizimport/pkg/types"
)

// Backend is the store a run owns from connection to close.
type Backend interface {
	types.QuestionStore
	Detach() error
}

// errSkipFile marks a file that was abandoned before its import started.
var errSkipFile = errors.New("file skipped")

// Runner drives one interactive import: connect, scan, ask the setup
// questions, then import each file in scan order.
type Runner struct {
	// Open connects to storage. The runner detaches whatever it returns.
	Open      func() (Backend, error)
	SourceDir string
	Prompt    *console.Prompter
	Out       io.Writer
}

// Run executes the import. It returns an error for the conditions that end a
// run early (connection failure, an unreadable or empty source directory, an
// aborted setup step); each has already been reported on Out. The storage
// connection is closed on every path.
func (r *Runner) Run() (types.RunSummary, error) {
	var summary types.RunSummary

	fmt.Fprintln(r.Out, "Question bank import")
	fmt.Fprintf(r.Out, "Source directory: %s\n", r.SourceDir)

	store, err := r.Open()
	if err != nil {
		fmt.Fprintf(r.Out, "Database connection failed: %v\n", err)
		return summary, err
	}
	fmt.Fprintln(r.Out, "Connected to database")
	defer func() {
		if err := store.Detach(); err != nil {
			logger.WithError(err).Warn("closing database")
			return
		}
		fmt.Fprintln(r.Out, "Database connection closed")
	}()

	files, err := bank.Scan(r.SourceDir)
	if err != nil {
		if errors.Is(err, types.ErrNoSourceFiles) {
			fmt.Fprintln(r.Out, "No JSON files found")
		} else {
			fmt.Fprintf(r.Out, "Cannot scan source directory: %v\n", err)
		}
		return summary, err
	}
	summary.FilesFound = len(files)

	fmt.Fprintf(r.Out, "\nFound %d JSON files:\n", len(files))
	for i, f := range files {
		fmt.Fprintf(r.Out, "   %d. %s (%s)\n", i+1, f.Name, f.HumanSize())
	}

	opts, err := r.setup(store)
	if err != nil {
		return summary, err
	}

	for i, f := range files {
		res, err := r.processFile(store, f, opts)
		if err != nil {
			summary.FilesFailed++
			summary.QuestionsFailed += res.Failed
			logger.WithError(err).WithField("file", f.Name).Debug("file not imported")
		} else {
			summary.FilesProcessed++
			summary.QuestionsImported += res.Succeeded
			summary.QuestionsFailed += res.Failed
		}

		if i == len(files)-1 {
			break
		}
		if opts.AutoAdvance {
			fmt.Fprintln(r.Out, "\nStarting next file...")
			continue
		}
		if !r.Prompt.Confirm("\nContinue with the next file?") {
			fmt.Fprintln(r.Out, "Stopped by operator")
			summary.Halted = true
			break
		}
	}

	fmt.Fprintf(r.Out, "\nImport finished: %d of %d files, %d questions imported, %d failed\n",
		summary.FilesProcessed, summary.FilesFound, summary.QuestionsImported, summary.QuestionsFailed)
	return summary, nil
}

// setup asks the three run-wide questions and resolves any shared category
// and chapter up front.
func (r *Runner) setup(store types.QuestionStore) (types.RunOptions, error) {
	var opts types.RunOptions

	if r.Prompt.Confirm("\nUse the same category for all files?") {
		name, err := r.askName("Category for all files: ", "Category")
		if err != nil {
			return opts, err
		}
		cat, err := r.resolveCategory(store, name)
		if err != nil {
			return opts, err
		}
		opts.SharedCategory = true
		opts.CategoryName = cat.Name
		opts.CategoryID = cat.ID
	}

	if r.Prompt.Confirm("\nUse the same chapter for all files?") {
		owner := opts.CategoryName
		if !opts.SharedCategory {
			var err error
			if owner, err = r.askName("Category that owns the chapter: ", "Category"); err != nil {
				return opts, err
			}
		}
		name, err := r.askName("Chapter for all files: ", "Chapter")
		if err != nil {
			return opts, err
		}
		ch, err := r.resolveChapter(store, owner, name)
		if err != nil {
			return opts, err
		}
		opts.SharedChapter = true
		opts.ChapterCategory = owner
		opts.ChapterName = ch.Name
		opts.ChapterID = ch.ID
	}

	if r.Prompt.Confirm("\nStart the next file automatically?") {
		opts.AutoAdvance = true
		fmt.Fprintln(r.Out, "Files will be processed one after another")
	}
	return opts, nil
}

// processFile parses one file, resolves where its questions go, and imports
// them. It returns errSkipFile-wrapped errors for files abandoned before the
// import step.
func (r *Runner) processFile(store types.QuestionStore, f bank.SourceFile, opts types.RunOptions) (types.ImportResult, error) {
	fmt.Fprintf(r.Out, "\n%s\nProcessing file: %s\n%s\n", rule, f.Name, rule)

	items, err := bank.ParseFile(f.Path)
	if err != nil {
		fmt.Fprintf(r.Out, "Cannot read %s: %v\n", f.Name, err)
		return types.ImportResult{}, fmt.Errorf("%w: %w", errSkipFile, err)
	}
	fmt.Fprintf(r.Out, "Read %d questions\n", len(items))

	var target Target
	if opts.SharedCategory {
		target.Category = opts.CategoryName
		fmt.Fprintf(r.Out, "Using shared category '%s' (id %s)\n", target.Category, opts.CategoryID)
	} else {
		name, err := r.askName("Category: ", "Category")
		if err != nil {
			return types.ImportResult{}, fmt.Errorf("%w: %w", errSkipFile, err)
		}
		cat, err := r.resolveCategory(store, name)
		if err != nil {
			return types.ImportResult{}, fmt.Errorf("%w: %w", errSkipFile, err)
		}
		target.Category = cat.Name
	}

	if opts.SharedChapter {
		target.Chapter = opts.ChapterName
		fmt.Fprintf(r.Out, "Using shared chapter '%s' of '%s' (id %s)\n",
			target.Chapter, opts.ChapterCategory, opts.ChapterID)
	} else {
		name, err := r.askName("Chapter: ", "Chapter")
		if err != nil {
			return types.ImportResult{}, fmt.Errorf("%w: %w", errSkipFile, err)
		}
		ch, err := r.resolveChapter(store, target.Category, name)
		if err != nil {
			return types.ImportResult{}, fmt.Errorf("%w: %w", errSkipFile, err)
		}
		target.Chapter = ch.Name
	}

	res, err := ImportQuestions(store, target, items, r.Out, f.Name)
	if err != nil {
		fmt.Fprintf(r.Out, "Import of %s failed: %v\n", f.Name, err)
		return res, err
	}
	return res, nil
}

const rule = "============================================================"

// askName prompts for a required name. An empty answer is reported and
// returned as types.ErrInvalidName.
func (r *Runner) askName(prompt, what string) (string, error) {
	name := r.Prompt.Ask(prompt)
	if strings.TrimSpace(name) == "" {
		fmt.Fprintf(r.Out, "%s must not be empty\n", what)
		return "", fmt.Errorf("%s: %w", strings.ToLower(what), types.ErrInvalidName)
	}
	return name, nil
}

func (r *Runner) resolveCategory(store types.QuestionStore, name string) (*types.Category, error) {
	cat, created, err := store.EnsureCategory(name)
	if err != nil {
		fmt.Fprintf(r.Out, "Category '%s' failed: %v\n", name, err)
		return nil, err
	}
	if created {
		fmt.Fprintf(r.Out, "Created category '%s' (id %s)\n", cat.Name, cat.ID)
	} else {
		fmt.Fprintf(r.Out, "Category '%s' exists (id %s)\n", cat.Name, cat.ID)
	}
	return cat, nil
}

func (r *Runner) resolveChapter(store types.QuestionStore, category, name string) (*types.Chapter, error) {
	ch, created, err := store.EnsureChapter(category, name)
	if err != nil {
		fmt.Fprintf(r.Out, "Chapter '%s' failed: %v\n", name, err)
		return nil, err
	}
	if created {
		fmt.Fprintf(r.Out, "Created chapter '%s' (id %s)\n", ch.Name, ch.ID)
	} else {
		fmt.Fprintf(r.Out, "Chapter '%s' exists (id %s)\n", ch.Name, ch.ID)
	}
	return ch, nil
}
