package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spigell/hr-screener/internal/completion"
	"github.com/spigell/hr-screener/internal/completion/gemini"
	"github.com/spigell/hr-screener/internal/completion/openaicompat"
	"github.com/spigell/hr-screener/internal/extract"
	"github.com/spigell/hr-screener/internal/logger"
	"github.com/spigell/hr-screener/internal/screener"
	"github.com/spigell/hr-screener/internal/secrets"
	"github.com/spigell/hr-screener/internal/session"

	"github.com/joho/godotenv"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// consoleUser is the session key for the single console operator.
const consoleUser int64 = 1

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the interactive hr-screener session",
	Run: func(_ *cobra.Command, _ []string) {
		run()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// run is the main command for the cli.
func run() {
	ctx := context.Background()

	// A .env file is optional; real environments set variables directly.
	_ = godotenv.Load()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the hr-screener", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		logger.Fatal("config is required")
	}

	provider, err := newProvider(ctx, config, logger)
	if err != nil {
		logger.Fatal("building completion provider", zap.Error(err))
	}

	hr := screener.New(
		&screener.Config{
			MaxResponseTokens: config.MaxResponseTokens,
			MaxLogLength:      config.MaxLogLength,
		},
		&screener.Deps{
			Store:     session.NewStore(),
			Provider:  provider,
			Extractor: extract.NewPDF(),
			Responder: newConsoleResponder(logger),
			Logger:    logger,
		},
	)

	if err := consoleLoop(ctx, hr, logger); err != nil {
		logger.Fatal("exiting", zap.Error(err))
	}
}

// consoleLoop reads operator input until interrupt or /exit. Commands start
// with a slash, `/attach <file.pdf>` uploads a resume, everything else is
// free text for the screener.
func consoleLoop(ctx context.Context, hr *screener.Screener, logger *zap.Logger) error {
	logger.Info("console session started",
		zap.String("hint", "use /start, /attach <file.pdf>, /analyze, /clear, /reset; /exit to quit"),
	)

	for {
		prompt := promptui.Prompt{Label: "you"}

		input, err := prompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				logger.Info("exiting", zap.String("reason", "console closed"))
				return nil
			}
			return fmt.Errorf("reading console input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if input == "/exit" || input == "/quit" {
			logger.Info("exiting", zap.String("reason", "requested by operator"))
			return nil
		}

		up, err := parseUpdate(input)
		if err != nil {
			logger.Warn("skipping input", zap.Error(err))
			continue
		}

		if err := hr.Dispatch(ctx, up); err != nil {
			return fmt.Errorf("dispatching update: %w", err)
		}
	}
}

func parseUpdate(input string) (screener.Update, error) {
	up := screener.Update{User: consoleUser}

	if !strings.HasPrefix(input, "/") {
		up.Text = input
		return up, nil
	}

	name, arg, _ := strings.Cut(strings.TrimPrefix(input, "/"), " ")
	if name != "attach" {
		up.Command = name
		return up, nil
	}

	path := strings.TrimSpace(arg)
	if path == "" {
		return up, errors.New("usage: /attach <file.pdf>")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return up, fmt.Errorf("reading %q: %w", path, err)
	}

	up.Document = &screener.Document{
		Filename: filepath.Base(path),
		Data:     data,
	}

	return up, nil
}

func newProvider(ctx context.Context, config *Config, logger *zap.Logger) (completion.Provider, error) {
	name := strings.TrimSpace(strings.ToLower(config.Provider))

	switch name {
	case "", "gemini":
		if config.Gemini == nil {
			return nil, errors.New("gemini configuration is required")
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name: "gemini api key",
			File: config.Gemini.APIKeyFile,
			Env:  "GEMINI_API_KEY",
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set gemini.api-key-file or GEMINI_API_KEY)", err)
		}

		return gemini.New(ctx, apiKey, config.Gemini.Model, config.MaxLogLength, logger)
	case "openai":
		if config.OpenAI == nil {
			return nil, errors.New("openai configuration is required")
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name: "openai api key",
			File: config.OpenAI.APIKeyFile,
			Env:  "OPENAI_API_KEY",
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set openai.api-key-file or OPENAI_API_KEY)", err)
		}

		return openaicompat.New(apiKey, config.OpenAI.BaseURL, config.OpenAI.Model, config.MaxLogLength, logger)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", config.Provider)
	}
}
