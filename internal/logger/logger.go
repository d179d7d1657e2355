package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log общий логгер процесса. До вызова Init пишет в stderr с уровнем info.
var Log = logrus.New()

// FileOptions задаёт ротацию файла логов.
type FileOptions struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

var rotator *lumberjack.Logger

// Init инициализирует структурированный логгер.
func Init(level string) {
	Log = logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	// Используем JSON формат для production, text для development
	Log.SetFormatter(&logrus.JSONFormatter{})
}

// SetTextFormatter устанавливает текстовый формат логов (для development).
func SetTextFormatter() {
	if Log != nil {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
}

// SetFileOutput дублирует логи в файл с ротацией по размеру.
// Возвращает writer, который можно отдать gin.DefaultWriter.
func SetFileOutput(opts FileOptions) io.Writer {
	if opts.Path == "" {
		return os.Stdout
	}

	rotator = &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    opts.MaxSizeMB, // megabytes
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays, // days
		LocalTime:  true,
	}

	out := io.MultiWriter(os.Stdout, rotator)
	Log.SetOutput(out)
	return out
}

// Close закрывает файл логов, если он был открыт.
func Close() {
	if rotator == nil {
		return
	}
	if err := rotator.Close(); err != nil {
		Log.WithError(err).Warn("logger: не удалось закрыть файл логов")
	}
}
