// Package report builds the screening report and the selection decision record.
package report

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/spigell/resume-screener/internal/extract"
	"github.com/spigell/resume-screener/internal/scoring"
)

// Cutoff is the lowest total score that is selected.
const Cutoff = 75

const (
	StatusSelected    = "Selected"
	StatusNotSelected = "Not Selected"
)

const (
	none     = "None"
	ruleLine = 40
)

// ScreeningReport is the immutable outcome of one screening.
type ScreeningReport struct {
	ID            uuid.UUID
	ApplicantName string
	Role          string
	Candidate     extract.Candidate
	Match         scoring.Result
	SourceFile    string
}

// Selection is the compact decision record derived from a report.
type Selection struct {
	Name   string
	Role   string
	Score  int
	Status string
}

// Build aggregates the screening outcome. Only the base name of source is kept.
func Build(id uuid.UUID, applicant, role string, candidate extract.Candidate, result scoring.Result, source string) *ScreeningReport {
	return &ScreeningReport{
		ID:            id,
		ApplicantName: applicant,
		Role:          role,
		Candidate:     candidate,
		Match:         result,
		SourceFile:    BaseName(source),
	}
}

// BaseName returns the file name of a local path or of an s3:// object key.
func BaseName(source string) string {
	if strings.HasPrefix(source, "s3://") {
		return path.Base(strings.TrimPrefix(source, "s3://"))
	}
	return filepath.Base(source)
}

// Decide classifies a total score.
func Decide(total int) string {
	if total >= Cutoff {
		return StatusSelected
	}
	return StatusNotSelected
}

func (r *ScreeningReport) Status() string {
	return Decide(r.Match.Total)
}

func (r *ScreeningReport) Selection() Selection {
	return Selection{
		Name:   r.ApplicantName,
		Role:   r.Role,
		Score:  r.Match.Total,
		Status: r.Status(),
	}
}

// Text renders the full report.
func (r *ScreeningReport) Text() string {
	var b strings.Builder

	b.WriteString("\n" + strings.Repeat("=", 30) + " RESUME PARSE REPORT " + strings.Repeat("=", 30) + "\n\n")
	fmt.Fprintf(&b, "Applicant Name     : %s\n", r.ApplicantName)
	fmt.Fprintf(&b, "Parsed Name        : %s\n", r.Candidate.Name)
	fmt.Fprintf(&b, "Email              : %s\n", r.Candidate.Email)
	fmt.Fprintf(&b, "Phone              : %s\n", r.Candidate.Phone)
	fmt.Fprintf(&b, "Job Role Applied   : %s\n\n", r.Role)

	b.WriteString(strings.Repeat("-", 30) + " MATCHING SUMMARY " + strings.Repeat("-", 31) + "\n\n")
	fmt.Fprintf(&b, "Matched Skills     : %s\n", joinTerms(r.Match.MatchedSkills))
	fmt.Fprintf(&b, "Matched Languages  : %s\n\n", joinTerms(r.Match.MatchedLanguages))

	b.WriteString(strings.Repeat("-", 31) + " FILE INFO " + strings.Repeat("-", 37) + "\n\n")
	fmt.Fprintf(&b, "Resume File        : %s\n\n", r.SourceFile)

	b.WriteString(strings.Repeat("=", 79) + "\n")

	return b.String()
}

// Text renders the selection record followed by a rule line.
func (s Selection) Text() string {
	return fmt.Sprintf("Name: %s\nRole: %s\nScore: %d/100\nStatus: %s\n%s\n",
		s.Name, s.Role, s.Score, s.Status, strings.Repeat("-", ruleLine))
}

func joinTerms(terms []string) string {
	if len(terms) == 0 {
		return none
	}
	return strings.Join(terms, ", ")
}
