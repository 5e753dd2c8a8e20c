package cmd

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "jsprobe"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."
	dotenvFileName   = ".env"

	outputFlagName   = "output"
	uiFlagName       = "ui"
	verboseFlagName  = "verbose"
	parallelFlagName = "parallel"
	inputsFlagName   = "inputs"
	timeoutFlagName  = "timeout"
	detailFlagName   = "detail"
	codeFlagName     = "code"
	modifiedFlagName = "modified"
	diffFlagName     = "diff"
	writeFlagName    = "write"
	shardFlagName    = "shard"

	runParallelConfigKey = "run.parallel"
	runTimeoutConfigKey  = "run.timeout"
	runCacheConfigKey    = "run.cache"
	runSpillDirKey       = "run.spill_dir"
	sentinelConfigKey    = "mutation.sentinel"
	assertConfigKey      = "mutation.assert"
	coverDetailKey       = "cover.detail"

	defaultReportsDir  = ".jsprobe/reports"
	defaultUIMode      = uiModeAuto
	defaultRunParallel = 1
	defaultRunTimeout  = 2 * time.Second
	defaultRunCache    = 128
	defaultSentinel    = "__MUTANT__"
	defaultAssertIdent = "__assert__"
	defaultCoverDetail = false

	envPrefix = "JSPROBE"

	logFileKey       = "log.file"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFile       = ".jsprobe/jsprobe.log"
	defaultLogLevel      = "info"
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

// UI modes accepted by --ui.
const (
	uiModeAuto   = "auto"
	uiModeSimple = "simple"
	uiModeTUI    = "tui"
)

var globalLogger *slog.Logger

func init() {
	loadDotenv(dotenvFileName)

	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return
		}

		slog.Warn("Failed to read config file", "file", configFileName, "error", err)
	}
}

func setDefaults() {
	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(outputFlagName, defaultReportsDir)
	viper.SetDefault(uiFlagName, defaultUIMode)

	viper.SetDefault(runParallelConfigKey, defaultRunParallel)
	viper.SetDefault(runTimeoutConfigKey, defaultRunTimeout)
	viper.SetDefault(runCacheConfigKey, defaultRunCache)
	viper.SetDefault(runSpillDirKey, "")
	viper.SetDefault(sentinelConfigKey, defaultSentinel)
	viper.SetDefault(assertConfigKey, defaultAssertIdent)
	viper.SetDefault(coverDetailKey, defaultCoverDetail)

	viper.SetDefault(logFileKey, defaultLogFile)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)
}

// loadDotenv exports the variables of a .env file that are not already set.
// A missing file is ignored.
func loadDotenv(path string) {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return
	}

	slog.Warn("Failed to load env file", "file", path, "error", err)
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Numeric slog levels are accepted too (-4 is debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger installs the global slog logger writing to a rotated file.
//
// The level comes from log.level; verbose forces Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFileKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFile
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
