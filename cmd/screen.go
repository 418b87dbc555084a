package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/criteria"
	"github.com/spigell/resume-screener/internal/extract"
	"github.com/spigell/resume-screener/internal/journal"
	"github.com/spigell/resume-screener/internal/logger"
	"github.com/spigell/resume-screener/internal/matching"
	"github.com/spigell/resume-screener/internal/screening"
)

const (
	PromptAnother = "Screen another resume"
	PromptClear   = "Clear form"
	PromptExit    = "Exit"
)

var errExit = errors.New("exit requested")

var menu = promptui.Select{
	Label: "What next?",
	Items: []string{PromptAnother, PromptClear, PromptExit},
}

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Screen a resume against a job role",
	Run: func(cmd *cobra.Command, _ []string) {
		screen(cmd)
	},
}

func init() {
	rootCmd.AddCommand(screenCmd)

	screenCmd.Flags().StringP("name", "n", "", "applicant name")
	screenCmd.Flags().StringP("role", "r", "", "job role to screen against (see the roles command)")
	screenCmd.Flags().StringP("file", "f", "", "resume file: a local PDF/DOCX path or s3://bucket/key")
	screenCmd.Flags().BoolP("interactive", "i", false, "prompt for missing values and keep screening until exit")
}

func screen(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig(viper.GetViper())
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the resume-screener", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	registry, err := buildRegistry(viper.GetViper())
	if err != nil {
		logger.Fatal("loading job roles", zap.Error(err))
	}

	pipeline, closeFn, err := buildPipeline(ctx, config, registry, logger)
	if err != nil {
		logger.Fatal("preparing the screening pipeline", zap.Error(err))
	}
	defer closeFn()

	logger.Debug("screening pipeline ready",
		zap.Strings("stages", pipeline.Stages()),
		zap.Strings("roles", registry.Names()),
	)

	req := screening.Request{
		ApplicantName: flagValue(cmd, "name"),
		Role:          flagValue(cmd, "role"),
		Source:        flagValue(cmd, "file"),
	}

	interactive := cmd.Flag("interactive").Changed || (req.ApplicantName == "" && req.Role == "" && req.Source == "")
	if !interactive {
		if err := screenOnce(ctx, pipeline, req, logger); err != nil {
			logger.Fatal("screening failed", zap.Error(err))
		}
		return
	}

	for {
		if err := fillRequest(&req, registry); err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := screenOnce(ctx, pipeline, req, logger); err != nil {
			logger.Error("screening failed", zap.Error(err))
		}

		_, action, err := menu.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, &req); err != nil {
			if errors.Is(err, errExit) {
				logger.Info("exiting", zap.String("reason", "got exit from prompt"))
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func buildPipeline(ctx context.Context, config *Config, registry *criteria.Registry, log *zap.Logger) (*screening.Pipeline, func(), error) {
	if config == nil {
		config = &Config{}
	}

	tagger, err := newTagger(ctx, config.NER, log)
	if err != nil {
		return nil, nil, fmt.Errorf("building entity tagger: %w", err)
	}

	documents, err := newDocumentReader(ctx, config.Storage)
	if err != nil {
		return nil, nil, err
	}

	logs := config.Logs
	if logs == nil {
		logs = &LogsConfig{ReportFile: journal.DefaultReportPath, SelectionFile: journal.DefaultSelectionPath}
	}

	results := journal.New(logs.ReportFile, logs.SelectionFile)
	reportLog, selectionLog := results.Paths()
	log.Debug("result logs",
		zap.String("report_log", reportLog),
		zap.String("selection_log", selectionLog),
	)

	deps := screening.Deps{
		Registry:  registry,
		Documents: documents,
		Extractor: extract.New(tagger),
		Matcher:   matching.New(),
		Journal:   results,
		Logger:    log,
	}

	closeFn := func() {}
	publisher, err := newPublisher(config.Publish)
	switch {
	case err != nil:
		log.Warn("decision publishing disabled", zap.Error(err))
	case publisher != nil:
		deps.Publisher = publisher
		closeFn = func() {
			if err := publisher.Close(); err != nil {
				log.Debug("closing decision publisher", zap.Error(err))
			}
		}
	}

	pipeline, err := screening.New(deps)
	if err != nil {
		closeFn()
		return nil, nil, err
	}

	return pipeline, closeFn, nil
}

func screenOnce(ctx context.Context, pipeline *screening.Pipeline, req screening.Request, log *zap.Logger) error {
	result, err := pipeline.Run(ctx, req)
	if err != nil {
		return err
	}

	fmt.Print(result.Text())

	log.Info("resume processed",
		zap.String("applicant", result.ApplicantName),
		zap.Int("score", result.Match.Total),
		zap.String("status", result.Status()),
	)
	return nil
}

// fillRequest prompts for every value that is still empty.
func fillRequest(req *screening.Request, registry *criteria.Registry) error {
	if req.ApplicantName == "" {
		name, err := (&promptui.Prompt{Label: "Applicant name", Validate: notBlank}).Run()
		if err != nil {
			return err
		}
		req.ApplicantName = strings.TrimSpace(name)
	}

	if _, ok := registry.Lookup(req.Role); !ok {
		rolePrompt := promptui.Select{
			Label: "Job role",
			Items: registry.Names(),
		}
		_, role, err := rolePrompt.Run()
		if err != nil {
			return err
		}
		req.Role = role
	}

	if req.Source == "" {
		file, err := (&promptui.Prompt{Label: "Resume file (PDF/DOCX path or s3://bucket/key)", Validate: notBlank}).Run()
		if err != nil {
			return err
		}
		req.Source = strings.TrimSpace(file)
	}

	return nil
}

func handleAction(action string, req *screening.Request) error {
	switch action {
	case PromptAnother:
		req.Source = ""
		return nil
	case PromptClear:
		*req = screening.Request{}
		return nil
	case PromptExit:
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func notBlank(input string) error {
	if strings.TrimSpace(input) == "" {
		return errors.New("value must not be empty")
	}
	return nil
}

func flagValue(cmd *cobra.Command, name string) string {
	flag := cmd.Flag(name)
	if flag == nil {
		return ""
	}
	return strings.TrimSpace(flag.Value.String())
}
