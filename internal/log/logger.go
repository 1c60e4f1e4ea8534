// Package log implements a compact, colourful logrus formatter for the
// vash command.
package log

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

// LevelEnv names the environment variable that overrides the log level.
const LevelEnv = "VASH_LOG_LEVEL"

// FancyLogFormatter prints one line per entry: time, level symbol, message
// and sorted fields.
type FancyLogFormatter struct {
	UseColors bool
}

var symbolTable = map[logrus.Level]string{
	logrus.TraceLevel: "·",
	logrus.DebugLevel: "⚙",
	logrus.InfoLevel:  "⚐",
	logrus.WarnLevel:  "⚠",
	logrus.ErrorLevel: "⚡",
	logrus.FatalLevel: "☣",
	logrus.PanicLevel: "☠",
}

var colorTable = map[logrus.Level]func(string, ...interface{}) string{
	logrus.TraceLevel: color.BlueString,
	logrus.DebugLevel: color.CyanString,
	logrus.InfoLevel:  color.GreenString,
	logrus.WarnLevel:  color.YellowString,
	logrus.ErrorLevel: color.RedString,
	logrus.FatalLevel: color.MagentaString,
	logrus.PanicLevel: color.MagentaString,
}

func colorByLevel(level logrus.Level, msg string) string {
	fn, ok := colorTable[level]
	if !ok {
		return msg
	}
	return fn("%s", msg)
}

func formatColored(useColors bool, buffer *bytes.Buffer, msg string, level logrus.Level) {
	if useColors {
		buffer.WriteString(colorByLevel(level, msg))
	} else {
		buffer.WriteString(msg)
	}
}

func formatTimestamp(buffer *bytes.Buffer, t time.Time) {
	fmt.Fprintf(buffer, "%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}

func formatFields(useColors bool, buffer *bytes.Buffer, entry *logrus.Entry) {
	keys := make([]string, 0, len(entry.Data))
	for key := range entry.Data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	buffer.WriteString(" [")
	for idx, key := range keys {
		if idx != 0 {
			buffer.WriteByte(' ')
		}
		formatColored(useColors, buffer, key, entry.Level)
		buffer.WriteByte('=')

		switch v := entry.Data[key].(type) {
		case error:
			formatColored(useColors, buffer, v.Error(), logrus.ErrorLevel)
		default:
			fmt.Fprintf(buffer, "%v", v)
		}
	}
	buffer.WriteByte(']')
}

// Format renders a single entry.
func (flf *FancyLogFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	prefix := &bytes.Buffer{}
	formatTimestamp(prefix, entry.Time)
	prefix.WriteByte(' ')
	prefix.WriteString(symbolTable[entry.Level])

	buffer := &bytes.Buffer{}
	formatColored(flf.UseColors, buffer, prefix.String(), entry.Level)

	buffer.WriteByte(' ')
	buffer.WriteString(entry.Message)

	if len(entry.Data) > 0 {
		formatFields(flf.UseColors, buffer, entry)
	}

	buffer.WriteByte('\n')
	return buffer.Bytes(), nil
}

// ParseLevel accepts logrus level names, case insensitive.
func ParseLevel(s string) (logrus.Level, error) {
	return logrus.ParseLevel(strings.TrimSpace(s))
}

// New returns a logger writing fancy lines to w. The level comes from
// LevelEnv when set and valid, else fallback.
func New(w io.Writer, useColors bool, fallback logrus.Level) *logrus.Logger {
	level := fallback
	if env := os.Getenv(LevelEnv); env != "" {
		if parsed, err := ParseLevel(env); err == nil {
			level = parsed
		}
	}

	return &logrus.Logger{
		Out:       w,
		Formatter: &FancyLogFormatter{UseColors: useColors},
		Hooks:     make(logrus.LevelHooks),
		Level:     level,
		ExitFunc:  os.Exit,
	}
}
