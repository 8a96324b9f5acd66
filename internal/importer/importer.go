// Package importer loads parsed question banks into a types.QuestionStore
// and drives the interactive, file-by-file import run.
package importer

import (
	"fmt"
	"io"

	logger "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/mesh-intelligence/quizimport/internal/bank"
	"github.com/mesh-intelligence/quizimport/pkg/types"
)

// progressEvery controls how often a progress line is printed.
const progressEvery = 10

// Target names the category and chapter a file's questions are filed under.
type Target struct {
	Category string
	Chapter  string
}

// ImportQuestions converts and inserts every item into one batch. A question
// that fails conversion or insertion is reported and skipped. The batch is
// committed when at least one insert succeeded and rolled back otherwise.
// The returned error is set only when the batch itself could not be opened or
// committed.
func ImportQuestions(qs types.QuestionStore, target Target, items []gjson.Result, out io.Writer, file string) (types.ImportResult, error) {
	res := types.ImportResult{Total: len(items)}
	log := logger.WithFields(logger.Fields{
		"file":     file,
		"category": target.Category,
		"chapter":  target.Chapter,
	})

	fmt.Fprintf(out, "\nImporting %d questions\n", res.Total)

	qb, err := qs.BeginBatch()
	if err != nil {
		return res, err
	}

	for i, item := range items {
		idx := i + 1
		if err := importOne(qb, target, item); err != nil {
			res.Failed++
			fmt.Fprintf(out, "Question %d failed: %v\n", idx, err)
			log.WithError(err).WithField("index", idx).Warn("question skipped")
			continue
		}
		res.Succeeded++
		if idx%progressEvery == 0 {
			fmt.Fprintf(out, "Imported %d/%d...\n", idx, res.Total)
		}
	}

	if res.Succeeded == 0 {
		if err := qb.Rollback(); err != nil {
			log.WithError(err).Debug("rollback of empty batch failed")
		}
	} else {
		if err := qb.Commit(); err != nil {
			res.Failed += res.Succeeded
			res.Succeeded = 0
			return res, err
		}
		res.Committed = true
	}

	fmt.Fprintf(out, "\nDone: %d imported, %d failed\n", res.Succeeded, res.Failed)
	log.WithFields(logger.Fields{"imported": res.Succeeded, "failed": res.Failed}).Info("file imported")
	return res, nil
}

func importOne(qb types.QuestionBatch, target Target, item gjson.Result) error {
	q, err := bank.Convert(item)
	if err != nil {
		return err
	}
	q.Category = target.Category
	q.Chapter = target.Chapter
	return qb.Insert(q)
}
