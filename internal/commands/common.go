package commands

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"dropsort/internal/config"
	"dropsort/internal/logging"
)

type commonFlags struct {
	noColor bool
	noEmoji bool
}

// commandEnv carries the persistent flags and lazily loaded state shared by
// every subcommand of one invocation.
type commandEnv struct {
	configPath string
	logLevel   string
	logFormat  string
	common     commonFlags
	runID      string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandEnv() *commandEnv {
	return &commandEnv{runID: uuid.NewString()}
}

func (e *commandEnv) addPersistentFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&e.configPath, "config", "c", "", "configuration file (TOML or YAML)")
	flags.StringVar(&e.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&e.logFormat, "log-format", "", "log format: console or json")
	flags.BoolVar(&e.common.noColor, "no-color", false, "disable ANSI colors")
	flags.BoolVar(&e.common.noEmoji, "no-emoji", false, "disable emoji and block glyphs in output")
}

func (e *commandEnv) applyCommonFlags() {
	if e.common.noColor {
		color.NoColor = true
	}
}

func (e *commandEnv) ensureConfig() (*config.Config, error) {
	e.configOnce.Do(func() {
		cfg, _, _, err := config.Load(strings.TrimSpace(e.configPath))
		if err != nil {
			e.configErr = err
			return
		}
		e.config = cfg
	})
	return e.config, e.configErr
}

// ensureLogger builds the invocation logger on the command's stderr. Flag
// values win over the configuration.
func (e *commandEnv) ensureLogger(cmd *cobra.Command) (*slog.Logger, error) {
	e.loggerOnce.Do(func() {
		cfg, err := e.ensureConfig()
		if err != nil {
			e.loggerErr = err
			return
		}
		level, format := cfg.Logging.Level, cfg.Logging.Format
		if strings.TrimSpace(e.logLevel) != "" {
			level = e.logLevel
		}
		if strings.TrimSpace(e.logFormat) != "" {
			format = e.logFormat
		}
		logger, err := logging.New(logging.Options{Level: level, Format: format, Writer: cmd.ErrOrStderr()})
		if err != nil {
			e.loggerErr = usageError{err: err}
			return
		}
		e.logger = logging.WithRunID(logger, e.runID)
	})
	return e.logger, e.loggerErr
}
