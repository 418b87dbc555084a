package screening

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/publish"
	"github.com/spigell/resume-screener/internal/report"
	"github.com/spigell/resume-screener/internal/scoring"
)

const (
	StageRead    = "read"
	StageFields  = "fields"
	StageMatch   = "match"
	StageReport  = "report"
	StageJournal = "journal"
	StagePublish = "publish"
)

type readStage struct{}

func (readStage) Name() string { return StageRead }

func (readStage) Apply(ctx context.Context, deps Deps, s *State) error {
	deps.Logger.Info("processing resume", zap.String("source", s.Request.Source))

	doc, err := deps.Documents.Read(ctx, s.Request.Source)
	if err != nil {
		return err
	}

	s.Document = doc
	deps.Logger.Debug("resume text extracted", zap.Int("lines", doc.Len()))
	return nil
}

type fieldsStage struct{}

func (fieldsStage) Name() string { return StageFields }

func (fieldsStage) Apply(ctx context.Context, deps Deps, s *State) error {
	candidate, err := deps.Extractor.Extract(ctx, s.Document.FullText())
	if err != nil {
		return err
	}

	s.Candidate = candidate
	deps.Logger.Debug("candidate fields extracted",
		zap.Bool("name_found", candidate.Name.Found),
		zap.Bool("email_found", candidate.Email.Found),
		zap.Bool("phone_found", candidate.Phone.Found),
	)
	return nil
}

type matchStage struct{}

func (matchStage) Name() string { return StageMatch }

func (matchStage) Apply(_ context.Context, deps Deps, s *State) error {
	s.Result = scoring.Evaluate(s.Role, s.Document.FullText(), deps.Matcher)

	deps.Logger.Debug("requirements matched",
		zap.Strings("matched_skills", s.Result.MatchedSkills),
		zap.Strings("matched_languages", s.Result.MatchedLanguages),
		zap.Int("skill_score", s.Result.SkillScore),
		zap.Int("language_score", s.Result.LanguageScore),
	)
	return nil
}

type reportStage struct{}

func (reportStage) Name() string { return StageReport }

func (reportStage) Apply(_ context.Context, _ Deps, s *State) error {
	s.Report = report.Build(s.ID, s.Request.ApplicantName, s.Role.Name(), s.Candidate, s.Result, s.Request.Source)
	return nil
}

type journalStage struct{}

func (journalStage) Name() string { return StageJournal }

func (journalStage) Apply(_ context.Context, deps Deps, s *State) error {
	return deps.Journal.Append(s.Report)
}

// publishStage never fails the run: the logs are already written.
type publishStage struct{}

func (publishStage) Name() string { return StagePublish }

func (publishStage) Apply(ctx context.Context, deps Deps, s *State) error {
	if deps.Publisher == nil {
		deps.Logger.Debug("decision publisher is not configured; skipping")
		return nil
	}

	event := publish.NewEvent(s.Report, deps.Now())
	if err := deps.Publisher.Publish(ctx, event); err != nil {
		deps.Logger.Warn("publishing screening decision failed",
			zap.String("routing_key", event.RoutingKey()),
			zap.Error(err),
		)
		return nil
	}

	deps.Logger.Debug("screening decision published", zap.String("routing_key", event.RoutingKey()))
	return nil
}

func defaultStages() []Stage {
	return []Stage{
		readStage{},
		fieldsStage{},
		matchStage{},
		reportStage{},
		journalStage{},
		publishStage{},
	}
}

func runStage(ctx context.Context, deps Deps, stage Stage, s *State) error {
	started := time.Now()
	if err := stage.Apply(ctx, deps, s); err != nil {
		return fmt.Errorf("%s: %w", stage.Name(), err)
	}

	deps.Logger.Info("screening step",
		zap.String("name", stage.Name()),
		zap.Duration("duration", time.Since(started)),
	)
	return nil
}
