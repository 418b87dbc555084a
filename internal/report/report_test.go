package report

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/resume-screener/internal/extract"
	"github.com/spigell/resume-screener/internal/scoring"
)

func TestText(t *testing.T) {
	t.Parallel()

	r := Build(uuid.New(), "Jane", "Developer",
		extract.Candidate{
			Name:  extract.Present("Jane Doe"),
			Email: extract.Present("jane.doe@gmail.com"),
		},
		scoring.Result{
			MatchedSkills:    []string{"html", "css", "communication"},
			MatchedLanguages: []string{},
			SkillScore:       30,
			Total:            30,
		},
		"/home/jane/cv/resume.pdf",
	)

	want := `
============================== RESUME PARSE REPORT ==============================

Applicant Name     : Jane
Parsed Name        : Jane Doe
Email              : jane.doe@gmail.com
Phone              : Not found
Job Role Applied   : Developer

------------------------------ MATCHING SUMMARY -------------------------------

Matched Skills     : html, css, communication
Matched Languages  : None

------------------------------- FILE INFO -------------------------------------

Resume File        : resume.pdf

===============================================================================
`
	assert.Equal(t, want, r.Text())
}

func TestDecide(t *testing.T) {
	t.Parallel()

	tests := []struct {
		total int
		want  string
	}{
		{total: 0, want: StatusNotSelected},
		{total: 63, want: StatusNotSelected},
		{total: 74, want: StatusNotSelected},
		{total: 75, want: StatusSelected},
		{total: 100, want: StatusSelected},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Decide(tt.total), "total %d", tt.total)
	}
}

func TestSelection(t *testing.T) {
	t.Parallel()

	r := Build(uuid.Nil, "Jane", "Developer", extract.Candidate{}, scoring.Result{Total: 63}, "resume.pdf")
	sel := r.Selection()

	require.Equal(t, Selection{Name: "Jane", Role: "Developer", Score: 63, Status: StatusNotSelected}, sel)
	assert.Equal(t, "Name: Jane\nRole: Developer\nScore: 63/100\nStatus: Not Selected\n"+strings.Repeat("-", 40)+"\n", sel.Text())

	r = Build(uuid.Nil, "Jane", "Developer", extract.Candidate{}, scoring.Result{Total: 100}, "resume.pdf")
	assert.Equal(t, StatusSelected, r.Status())
}

func TestBaseName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"resume.pdf":                      "resume.pdf",
		"/tmp/in/resume.docx":             "resume.docx",
		"s3://bucket/candidates/jane.pdf": "jane.pdf",
		"s3://bucket/jane.pdf":            "jane.pdf",
	}

	for in, want := range tests {
		assert.Equal(t, want, BaseName(in), in)
	}
}
