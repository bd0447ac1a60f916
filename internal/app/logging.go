package app

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// LogLevel is the severity of a log line.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l LogLevel) String() string {
	if l >= 0 && int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "UNKNOWN"
}

// ParseLogLevel parses a level name, ignoring case. Unknown names report
// false and return LogLevelInfo.
func ParseLogLevel(s string) (LogLevel, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "WARNING" {
		return LogLevelWarn, true
	}
	for i, name := range levelNames {
		if s == name {
			return LogLevel(i), true
		}
	}
	return LogLevelInfo, false
}

// Logger writes leveled, printf-style lines of the form
//
//	2006-01-02T15:04:05.000 [LEVEL] prefix: message {key=value, ...}
//
// Loggers derived with WithField share the level and output of their
// parent.
type Logger struct {
	sink     *logSink
	prefix   string
	fields   []logField // sorted by key
	suffix   string     // rendered fields
	clock    func() time.Time
	disabled bool
}

type logField struct {
	key   string
	value any
}

type logSink struct {
	mu     sync.Mutex
	level  LogLevel
	output io.Writer
}

// LoggerConfig configures NewLogger. Zero Output and Clock default to
// os.Stderr and time.Now.
type LoggerConfig struct {
	Level  LogLevel
	Output io.Writer
	Prefix string
	Clock  func() time.Time
}

// DefaultLoggerConfig logs info and above to stderr.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:  LogLevelInfo,
		Output: os.Stderr,
		Prefix: "hexview",
	}
}

func NewLogger(cfg LoggerConfig) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &Logger{
		sink:   &logSink{level: cfg.Level, output: cfg.Output},
		prefix: cfg.Prefix,
		clock:  cfg.Clock,
	}
}

// WithField returns a logger that appends key=value to every line. A
// field already present is replaced.
func (l *Logger) WithField(key string, value any) *Logger {
	i := sort.Search(len(l.fields), func(i int) bool { return l.fields[i].key >= key })
	fields := make([]logField, 0, len(l.fields)+1)
	fields = append(fields, l.fields[:i]...)
	fields = append(fields, logField{key, value})
	if i < len(l.fields) && l.fields[i].key == key {
		i++
	}
	fields = append(fields, l.fields[i:]...)

	child := *l
	child.fields = fields
	child.suffix = renderFields(fields)
	return &child
}

// WithComponent is WithField("component", component).
func (l *Logger) WithComponent(component string) *Logger {
	return l.WithField("component", component)
}

func renderFields(fields []logField) string {
	var b strings.Builder
	b.WriteString(" {")
	for i, f := range fields {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", f.key, f.value)
	}
	b.WriteByte('}')
	return b.String()
}

// SetLevel changes the minimum level of l and of every logger sharing
// its output.
func (l *Logger) SetLevel(level LogLevel) {
	l.sink.mu.Lock()
	l.sink.level = level
	l.sink.mu.Unlock()
}

func (l *Logger) Level() LogLevel {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	return l.sink.level
}

func (l *Logger) Debug(msg string, args ...any) { l.log(LogLevelDebug, msg, args) }
func (l *Logger) Info(msg string, args ...any)  { l.log(LogLevelInfo, msg, args) }
func (l *Logger) Warn(msg string, args ...any)  { l.log(LogLevelWarn, msg, args) }
func (l *Logger) Error(msg string, args ...any) { l.log(LogLevelError, msg, args) }

func (l *Logger) log(level LogLevel, msg string, args []any) {
	if l.disabled {
		return
	}
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	if level < l.sink.level {
		return
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	prefix := ""
	if l.prefix != "" {
		prefix = l.prefix + ": "
	}
	_, _ = fmt.Fprintf(l.sink.output, "%s [%s] %s%s%s\n",
		l.clock().Format("2006-01-02T15:04:05.000"), level, prefix, msg, l.suffix)
}

// NullLogger discards everything.
var NullLogger = &Logger{sink: &logSink{output: io.Discard}, disabled: true}

// OpenLogOutput picks the log destination. A named file is opened for
// appending. Without one, the terminal backend discards logs, since stderr
// shares the screen, and everything else logs to stderr.
// The returned closer is nil unless a file was opened.
func OpenLogOutput(path string, terminal bool) (io.Writer, io.Closer, error) {
	switch {
	case path != "":
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		return f, f, nil
	case terminal:
		return io.Discard, nil, nil
	default:
		return os.Stderr, nil, nil
	}
}
