// Package journal appends screening outcomes to the two result logs.
package journal

import (
	"fmt"
	"os"

	"github.com/spigell/resume-screener/internal/report"
)

const (
	DefaultReportPath    = "parsed_results.txt"
	DefaultSelectionPath = "selection_results.txt"
)

// Journal writes every report to the report log and its decision to the selection log.
// An empty path disables the corresponding log.
type Journal struct {
	reportPath    string
	selectionPath string
}

func New(reportPath, selectionPath string) *Journal {
	return &Journal{
		reportPath:    reportPath,
		selectionPath: selectionPath,
	}
}

// Append writes r to both logs. Existing content is never modified.
// Nothing is written unless both logs can be opened.
func (j *Journal) Append(r *report.ScreeningReport) error {
	if r == nil {
		return fmt.Errorf("report is required")
	}

	reports, err := open(j.reportPath)
	if err != nil {
		return fmt.Errorf("append report log: %w", err)
	}
	defer reports.Close()

	selections, err := open(j.selectionPath)
	if err != nil {
		return fmt.Errorf("append selection log: %w", err)
	}
	defer selections.Close()

	if err := write(reports, r.Text()+"\n\n"); err != nil {
		return fmt.Errorf("append report log: %w", err)
	}

	if err := write(selections, r.Selection().Text()); err != nil {
		return fmt.Errorf("append selection log: %w", err)
	}

	return nil
}

// Paths returns the report and selection log paths.
func (j *Journal) Paths() (string, string) {
	return j.reportPath, j.selectionPath
}

// open returns nil for an empty path.
func open(path string) (*os.File, error) {
	if path == "" {
		return nil, nil
	}
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
}

func write(file *os.File, text string) error {
	if file == nil {
		return nil
	}

	if _, err := file.WriteString(text); err != nil {
		return err
	}
	return file.Sync()
}
