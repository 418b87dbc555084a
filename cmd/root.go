package cmd

import (
	"errors"
	"io/fs"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/resume-screener/internal/journal"
	"github.com/spigell/resume-screener/internal/publish"
	"github.com/spigell/resume-screener/internal/storage"
)

const (
	app       = "resume-screener"
	envPrefix = "RESUME_SCREENER"
)

// Roles are read separately with criteria.Decode.
type Config struct {
	Logs    *LogsConfig    `mapstructure:"logs"`
	NER     *NERConfig     `mapstructure:"ner"`
	Storage *StorageConfig `mapstructure:"storage"`
	Publish *PublishConfig `mapstructure:"publish"`
}

type LogsConfig struct {
	ReportFile    string `mapstructure:"report-file"`
	SelectionFile string `mapstructure:"selection-file"`
}

type NERConfig struct {
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key" json:"-"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

type StorageConfig struct {
	S3 *S3Config `mapstructure:"s3"`
}

type S3Config struct {
	Endpoint      string `mapstructure:"endpoint"`
	Region        string `mapstructure:"region"`
	AccessKeyFile string `mapstructure:"access-key-file"`
	SecretKeyFile string `mapstructure:"secret-key-file"`
}

type PublishConfig struct {
	AMQPURL  string `mapstructure:"amqp-url"`
	Exchange string `mapstructure:"exchange"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-screener scores resumes against job role requirements",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	setDefaults(viper.GetViper())

	envBindings := map[string][]string{
		"ner.gemini.api-key":      {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
		"ner.gemini.api-key-file": {"GEMINI_API_KEY_FILE"},
		"publish.amqp-url":        {"RABBITMQ_URL"},
	}
	for key, envs := range envBindings {
		if err := viper.BindEnv(append([]string{key}, envs...)...); err != nil {
			log.Fatalf("binding %s environment variables: %v", strings.Join(envs, ", "), err)
		}
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-screener.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logs.report-file", journal.DefaultReportPath)
	v.SetDefault("logs.selection-file", journal.DefaultSelectionPath)
	v.SetDefault("ner.provider", providerProse)
	v.SetDefault("ner.gemini.model", "gemini-2.5-flash")
	v.SetDefault("ner.gemini.max-retries", 3)
	v.SetDefault("ner.gemini.max-log-length", 200)
	v.SetDefault("storage.s3.endpoint", "")
	v.SetDefault("storage.s3.region", storage.DefaultRegion)
	v.SetDefault("storage.s3.access-key-file", "")
	v.SetDefault("storage.s3.secret-key-file", "")
	v.SetDefault("publish.amqp-url", "")
	v.SetDefault("publish.exchange", publish.DefaultExchange)
}

func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env file: %v", err)
	}

	if err := readConfig(viper.GetViper(), cfgFile); err != nil {
		log.Fatal(err)
	}
}

// readConfig reads an explicit config file, or resume-screener.yaml from the
// current directory when it exists. Built-in defaults apply otherwise.
func readConfig(v *viper.Viper, file string) error {
	if file != "" {
		v.SetConfigFile(file)
		return v.ReadInConfig()
	}

	v.AddConfigPath(".")
	v.SetConfigName(app)
	v.SetConfigType("yaml")

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}
	return err
}

func getConfig(v *viper.Viper) (*Config, error) {
	var config *Config
	err := v.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
