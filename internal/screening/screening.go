// Package screening runs a resume through extraction, matching, scoring and
// result logging.
package screening

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/criteria"
	"github.com/spigell/resume-screener/internal/document"
	"github.com/spigell/resume-screener/internal/extract"
	"github.com/spigell/resume-screener/internal/logger"
	"github.com/spigell/resume-screener/internal/matching"
	"github.com/spigell/resume-screener/internal/publish"
	"github.com/spigell/resume-screener/internal/report"
	"github.com/spigell/resume-screener/internal/scoring"
)

// DocumentReader loads a resume from a local path or an object URI.
type DocumentReader interface {
	Read(ctx context.Context, source string) (*document.Document, error)
}

// FieldExtractor pulls candidate contact fields out of resume text.
type FieldExtractor interface {
	Extract(ctx context.Context, text string) (extract.Candidate, error)
}

// Recorder persists a finished report.
type Recorder interface {
	Append(r *report.ScreeningReport) error
}

// Publisher announces a screening decision.
type Publisher interface {
	Publish(ctx context.Context, e publish.Event) error
}

// Deps aggregates dependencies shared across all screening stages.
// Publisher is optional.
type Deps struct {
	Registry  *criteria.Registry
	Documents DocumentReader
	Extractor FieldExtractor
	Matcher   scoring.TermMatcher
	Journal   Recorder
	Publisher Publisher
	Logger    *zap.Logger

	Now   func() time.Time
	NewID func() uuid.UUID
}

// Stage is a single step of a screening run.
type Stage interface {
	Name() string
	Apply(ctx context.Context, deps Deps, s *State) error
}

// Request names the applicant, the role applied for and the resume source.
type Request struct {
	ApplicantName string
	Role          string
	Source        string
}

// State is filled in by the stages as the run progresses.
type State struct {
	ID        uuid.UUID
	Request   Request
	Role      criteria.Role
	Document  *document.Document
	Candidate extract.Candidate
	Result    scoring.Result
	Report    *report.ScreeningReport
}

// Pipeline screens one resume at a time.
type Pipeline struct {
	deps     Deps
	stages   []Stage
	inFlight atomic.Bool
}

func New(deps Deps) (*Pipeline, error) {
	if deps.Registry == nil {
		return nil, errors.New("role registry is required")
	}
	if deps.Documents == nil {
		return nil, errors.New("document reader is required")
	}
	if deps.Extractor == nil {
		return nil, errors.New("field extractor is required")
	}
	if deps.Journal == nil {
		return nil, errors.New("journal is required")
	}
	if deps.Matcher == nil {
		deps.Matcher = matching.New()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.NewID == nil {
		deps.NewID = uuid.New
	}

	return &Pipeline{deps: deps, stages: defaultStages()}, nil
}

// Stages lists the stage names in execution order.
func (p *Pipeline) Stages() []string {
	names := make([]string, 0, len(p.stages))
	for _, stage := range p.stages {
		names = append(names, stage.Name())
	}
	return names
}

// Run screens a single resume. Inputs are validated before anything is read.
// On error no report is returned and nothing is written to the journal.
func (p *Pipeline) Run(ctx context.Context, req Request) (*report.ScreeningReport, error) {
	req.ApplicantName = strings.TrimSpace(req.ApplicantName)
	req.Role = strings.TrimSpace(req.Role)
	req.Source = strings.TrimSpace(req.Source)

	role, err := p.validate(req)
	if err != nil {
		return nil, err
	}

	if !p.inFlight.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer p.inFlight.Store(false)

	state := &State{
		ID:      p.deps.NewID(),
		Request: req,
		Role:    role,
	}

	deps := p.deps
	deps.Logger = logger.WithFields(p.deps.Logger, logger.ScreeningFields(state.ID.String(), role.Name(), req.Source)...)

	for _, stage := range p.stages {
		if err := runStage(ctx, deps, stage, state); err != nil {
			return nil, err
		}
	}

	deps.Logger.Info("screening completed",
		zap.Int("score", state.Report.Match.Total),
		zap.String("status", state.Report.Status()),
	)

	return state.Report, nil
}

func (p *Pipeline) validate(req Request) (criteria.Role, error) {
	if req.ApplicantName == "" {
		return criteria.Role{}, &MissingInputError{Field: FieldApplicantName}
	}
	if req.Role == "" {
		return criteria.Role{}, &MissingInputError{Field: FieldRole}
	}

	role, ok := p.deps.Registry.Lookup(req.Role)
	if !ok {
		return criteria.Role{}, &MissingInputError{Field: FieldRole, Value: req.Role}
	}

	if req.Source == "" {
		return criteria.Role{}, &MissingInputError{Field: FieldSource}
	}

	return role, nil
}
