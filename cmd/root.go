package cmd

import (
	"errors"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/trusthire/internal/document"
	"github.com/spigell/trusthire/internal/server"
)

const (
	app       = "trusthire"
	envPrefix = "TRUSTHIRE"
)

type Config struct {
	GitHub *GitHubConfig   `mapstructure:"github"`
	Upload document.Config `mapstructure:"upload"`
	Server server.Config   `mapstructure:"server"`
	AI     *AIConfig       `mapstructure:"ai"`
}

type GitHubConfig struct {
	APIURL              string        `mapstructure:"api-url"`
	Token               string        `mapstructure:"token"`
	TokenFile           string        `mapstructure:"token-file"`
	UserAgent           string        `mapstructure:"user-agent"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRepos            int           `mapstructure:"max-repos"`
	LanguageConcurrency int           `mapstructure:"language-concurrency"`
}

type AIConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Gemini  *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey            string `mapstructure:"api-key"`
	APIKeyFile        string `mapstructure:"api-key-file"`
	Model             string `mapstructure:"model"`
	MaxRetries        int    `mapstructure:"max-retries"`
	MaxLogLength      int    `mapstructure:"max-log-length"`
	QuestionsPerSkill int    `mapstructure:"questions-per-skill"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "trusthire checks the skills claimed on a resume against the candidate's GitHub activity",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is trusthire.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	setDefaults(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("github.api-url", "https://api.github.com/")
	v.SetDefault("github.timeout", "15s")
	v.SetDefault("github.max-repos", 300)
	v.SetDefault("github.language-concurrency", 5)
	v.SetDefault("upload.max-size", document.DefaultMaxSize)
	v.SetDefault("upload.allowed-extensions", document.DefaultExtensions)
	v.SetDefault("server.addr", ":8000")
	v.SetDefault("server.cors-origins", []string{"*"})
	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.gemini.model", "gemini-2.5-flash")
	v.SetDefault("ai.gemini.max-retries", 3)
	v.SetDefault("ai.gemini.questions-per-skill", 2)

	// Keys below have no default but must still be visible to Unmarshal when
	// they only come from the environment.
	for _, key := range []string{"github.token", "github.token-file", "github.user-agent", "upload.temp-dir", "ai.gemini.api-key", "ai.gemini.api-key-file"} {
		v.SetDefault(key, "")
	}
}

func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env file: %v", err)
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.BindEnv("github.token", envPrefix+"_GITHUB_TOKEN", "GITHUB_TOKEN"); err != nil {
		log.Fatalf("binding GITHUB_TOKEN environment variable: %v", err)
	}
	if err := viper.BindEnv("ai.gemini.api-key", envPrefix+"_AI_GEMINI_API_KEY", "GEMINI_API_KEY"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY environment variable: %v", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// A missing default config file is fine: every key has a default or an
	// environment variable.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config.GitHub == nil {
		config.GitHub = &GitHubConfig{}
	}
	if config.AI == nil {
		config.AI = &AIConfig{}
	}
	if config.AI.Gemini == nil {
		config.AI.Gemini = &GeminiConfig{}
	}

	return config, nil
}
