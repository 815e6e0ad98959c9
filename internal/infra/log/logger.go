package log

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger writes to logs/app.log once Init is called, until then it discards
var Logger = zap.NewNop()
var consoleLogger = zap.NewNop() // console lines (SUCCESS, WARN, ERROR)
var mu sync.Mutex

const (
	// MaxLogFileSizeMB - app.log size before lumberjack rotates it
	MaxLogFileSizeMB = 50
	maxLogBackups    = 3
	maxLogAgeDays    = 28
)

var bufferPool = buffer.NewPool()

func init() {
	l, err := buildConsoleLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize console logger: %v\n", err)
		return
	}
	consoleLogger = l
}

// Init attaches the file logger under logsDir.
// Safe to call more than once; the last call wins.
func Init(logsDir string) error {
	if logsDir == "" {
		logsDir = "logs"
	}
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	fileConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05"),
		EncodeDuration: zapcore.SecondsDurationEncoder,
	}

	writer := &lumberjack.Logger{
		Filename:   filepath.Join(logsDir, "app.log"),
		MaxSize:    MaxLogFileSizeMB,
		MaxBackups: maxLogBackups,
		MaxAge:     maxLogAgeDays,
	}

	fileCore := zapcore.NewCore(
		&customFileEncoder{Encoder: zapcore.NewConsoleEncoder(fileConfig)},
		zapcore.AddSync(writer),
		zapcore.DebugLevel,
	)

	mu.Lock()
	Logger = zap.New(fileCore)
	mu.Unlock()
	return nil
}

// Sync flushes both loggers
func Sync() {
	mu.Lock()
	defer mu.Unlock()
	_ = Logger.Sync()
	_ = consoleLogger.Sync()
}

func buildConsoleLogger() (*zap.Logger, error) {
	consoleConfig := zap.NewDevelopmentConfig()
	consoleConfig.EncoderConfig.EncodeLevel = customLevelEncoder
	consoleConfig.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	consoleConfig.EncoderConfig.EncodeCaller = nil
	consoleConfig.Development = false
	consoleConfig.DisableStacktrace = true
	consoleConfig.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	return consoleConfig.Build()
}

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorWhite  = "\033[37m"
)

func customLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	switch level {
	case zapcore.DebugLevel:
		enc.AppendString(colorCyan + "DEBUG" + colorReset)
	case zapcore.InfoLevel:
		enc.AppendString(colorGreen + "SUCCESS" + colorReset) // INFO on the console = SUCCESS
	case zapcore.WarnLevel:
		enc.AppendString(colorYellow + "WARN" + colorReset)
	case zapcore.ErrorLevel:
		enc.AppendString(colorRed + "ERROR" + colorReset)
	case zapcore.FatalLevel:
		enc.AppendString(colorRed + "FATAL" + colorReset)
	case zapcore.PanicLevel:
		enc.AppendString(colorRed + "PANIC" + colorReset)
	default:
		enc.AppendString(colorWhite + level.String() + colorReset)
	}
}

func fileLogger() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	return Logger
}

// LogInfo (file only)
func LogInfo(message string, fields ...zap.Field) {
	fileLogger().Info(message, fields...)
}

// LogSuccess (file and console)
func LogSuccess(message string, fields ...zap.Field) {
	durationMs := extractDuration(fields)

	fileLogger().Info(message, fields...)

	if durationMs > 0 {
		consoleLogger.Info(fmt.Sprintf("✓ %s (%dms)", message, durationMs))
	} else {
		consoleLogger.Info("✓ " + message)
	}
}

// LogNotice is a warning the user should see: skipped charts, sample data fallback
func LogNotice(message string, fields ...zap.Field) {
	fileLogger().Warn(message, fields...)
	consoleLogger.Warn("! " + message)
}

// LogError (file and console)
func LogError(message string, fields ...zap.Field) {
	durationMs := extractDuration(fields)

	fileLogger().Error(message, fields...)

	if durationMs > 0 {
		consoleLogger.Error(fmt.Sprintf("✗ %s (%dms)", message, durationMs))
	} else {
		consoleLogger.Error("✗ " + message)
	}
}

// LogWarn (file only)
func LogWarn(message string, fields ...zap.Field) {
	fileLogger().Warn(message, fields...)
}

// LogDebug (file only)
func LogDebug(message string, fields ...zap.Field) {
	fileLogger().Debug(message, fields...)
}

// extractDuration pulls duration_ms out of the fields for the console suffix
func extractDuration(fields []zap.Field) int64 {
	for _, field := range fields {
		if field.Key == "duration_ms" && field.Type == zapcore.Int64Type {
			return field.Integer
		}
	}
	return 0
}

// customFileEncoder writes "time     LEVEL message\t{json fields}"
type customFileEncoder struct {
	zapcore.Encoder
}

func (e *customFileEncoder) Clone() zapcore.Encoder {
	return &customFileEncoder{
		Encoder: e.Encoder.Clone(),
	}
}

func (e *customFileEncoder) EncodeEntry(entry zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	buf := bufferPool.Get()

	buf.AppendString(entry.Time.Format("2006-01-02 15:04:05"))
	buf.AppendString("     ")
	buf.AppendString(entry.Level.CapitalString())
	buf.AppendString(" ")

	if entry.Message != "" {
		buf.AppendString(entry.Message)
	}

	if len(fields) > 0 {
		buf.AppendString("\t")
		jsonData, err := json.Marshal(fieldsToMap(fields))
		if err == nil {
			buf.AppendString(string(jsonData))
		}
	}

	buf.AppendString("\n")
	return buf, nil
}

func fieldsToMap(fields []zapcore.Field) map[string]interface{} {
	enc := zapcore.NewMapObjectEncoder()
	for _, field := range fields {
		field.AddTo(enc)
	}
	return enc.Fields
}
