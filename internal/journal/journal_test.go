package journal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/resume-screener/internal/extract"
	"github.com/spigell/resume-screener/internal/report"
	"github.com/spigell/resume-screener/internal/scoring"
)

func newReport(applicant string, total int) *report.ScreeningReport {
	return report.Build(uuid.New(), applicant, "Developer", extract.Candidate{},
		scoring.Result{Total: total}, "resume.pdf")
}

func TestAppend(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	reportPath := filepath.Join(dir, DefaultReportPath)
	selectionPath := filepath.Join(dir, DefaultSelectionPath)
	j := New(reportPath, selectionPath)

	first := newReport("Jane", 63)
	second := newReport("John", 100)
	require.NoError(t, j.Append(first))
	require.NoError(t, j.Append(second))

	reports, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Equal(t, first.Text()+"\n\n"+second.Text()+"\n\n", string(reports))

	selections, err := os.ReadFile(selectionPath)
	require.NoError(t, err)
	assert.Equal(t, first.Selection().Text()+second.Selection().Text(), string(selections))
	assert.Equal(t, 1, strings.Count(string(selections), "Status: Not Selected"))
	assert.Equal(t, 1, strings.Count(string(selections), "Status: Selected"))
}

func TestAppendKeepsExistingContent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	selectionPath := filepath.Join(dir, "selection.txt")
	require.NoError(t, os.WriteFile(selectionPath, []byte("previous\n"), 0o644))

	j := New("", selectionPath)
	r := newReport("Jane", 80)
	require.NoError(t, j.Append(r))

	got, err := os.ReadFile(selectionPath)
	require.NoError(t, err)
	assert.Equal(t, "previous\n"+r.Selection().Text(), string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "disabled report log must not be created")
}

func TestAppendErrors(t *testing.T) {
	t.Parallel()

	j := New(filepath.Join(t.TempDir(), "missing", "report.txt"), "")
	assert.Error(t, j.Append(newReport("Jane", 10)))
	assert.Error(t, j.Append(nil))
}

func TestAppendLeavesReportLogUntouchedWhenSelectionLogFails(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	reportPath := filepath.Join(dir, "report.txt")
	selectionPath := filepath.Join(dir, "selection")
	require.NoError(t, os.Mkdir(selectionPath, 0o755))

	err := New(reportPath, selectionPath).Append(newReport("Jane", 90))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "append selection log")

	info, err := os.Stat(reportPath)
	if err == nil {
		assert.Zero(t, info.Size(), "report log must stay empty")
	} else {
		assert.ErrorIs(t, err, os.ErrNotExist)
	}
}

func TestPaths(t *testing.T) {
	t.Parallel()

	reportPath, selectionPath := New("a.txt", "").Paths()
	assert.Equal(t, "a.txt", reportPath)
	assert.Empty(t, selectionPath)
}
