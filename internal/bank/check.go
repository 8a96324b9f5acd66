package bank

// QuestionError records one question that failed conversion. Index is 1-based.
type QuestionError struct {
	Index int
	Err   error
}

// FileReport is the dry-run outcome of checking one file.
type FileReport struct {
	File     SourceFile
	Total    int
	Valid    int
	Failures []QuestionError
	ParseErr error // Set when the file was rejected as a whole.
}

// Check parses f and converts every question without storing anything.
func Check(f SourceFile) FileReport {
	report := FileReport{File: f}
	items, err := ParseFile(f.Path)
	if err != nil {
		report.ParseErr = err
		return report
	}

	report.Total = len(items)
	for i, item := range items {
		if _, err := Convert(item); err != nil {
			report.Failures = append(report.Failures, QuestionError{Index: i + 1, Err: err})
			continue
		}
		report.Valid++
	}
	return report
}
