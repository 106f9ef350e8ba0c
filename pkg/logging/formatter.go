/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: formatter.go
Description: Custom log formatters. CustomFormatter prints coloured, single-line entries
with sorted fields; ChromaFormatter adds an event prefix and compact rendering for the
classifier's own fields.
*/

package logging

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// CustomFormatter provides structured single-line output
type CustomFormatter struct {
	Timestamp bool
	Caller    bool
	Colors    bool
}

// Format formats a log entry
func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	return f.format(entry, "", f.formatValue)
}

func (f *CustomFormatter) format(entry *logrus.Entry, prefix string, value func(key string, v interface{}) string) ([]byte, error) {
	var output strings.Builder

	if f.Timestamp {
		f.write(&output, 36, entry.Time.Format("2006-01-02 15:04:05.000")) // Cyan
	}

	f.write(&output, f.getLevelColor(entry.Level), strings.ToUpper(entry.Level.String()))

	if prefix != "" {
		f.write(&output, 35, "["+prefix+"]") // Magenta
	}

	if f.Caller && entry.HasCaller() {
		f.write(&output, 33, fmt.Sprintf("[%s:%d]", entry.Caller.File, entry.Caller.Line)) // Yellow
	}

	output.WriteString(entry.Message)

	if len(entry.Data) > 0 {
		output.WriteString(" ")
		output.WriteString(f.formatFields(entry.Data, value))
	}

	output.WriteString("\n")
	return []byte(output.String()), nil
}

func (f *CustomFormatter) write(b *strings.Builder, color int, s string) {
	if f.Colors {
		fmt.Fprintf(b, "\033[%dm%s\033[0m ", color, s)
		return
	}
	b.WriteString(s)
	b.WriteString(" ")
}

// getLevelColor returns the ANSI color code for a log level
func (f *CustomFormatter) getLevelColor(level logrus.Level) int {
	switch level {
	case logrus.DebugLevel, logrus.TraceLevel:
		return 37 // White
	case logrus.InfoLevel:
		return 32 // Green
	case logrus.WarnLevel:
		return 33 // Yellow
	case logrus.ErrorLevel:
		return 31 // Red
	default:
		return 35 // Magenta
	}
}

// formatFields renders key=value pairs in key order so output is stable.
func (f *CustomFormatter) formatFields(fields logrus.Fields, value func(key string, v interface{}) string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		v := value(key, fields[key])
		if f.Colors {
			parts = append(parts, fmt.Sprintf("\033[34m%s\033[0m=\033[32m%s\033[0m", key, v)) // Blue key, Green value
		} else {
			parts = append(parts, fmt.Sprintf("%s=%s", key, v))
		}
	}
	return strings.Join(parts, " ")
}

// formatValue formats a field value appropriately
func (f *CustomFormatter) formatValue(_ string, value interface{}) string {
	switch v := value.(type) {
	case time.Duration:
		return v.String()
	case time.Time:
		return v.Format("15:04:05.000")
	case float64:
		return fmt.Sprintf("%g", v)
	case string:
		if len(v) > 50 {
			return fmt.Sprintf("%s...", v[:50])
		}
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ChromaFormatter prefixes classifier events and shortens engine identifiers.
type ChromaFormatter struct {
	CustomFormatter
}

// Format formats classifier log entries
func (f *ChromaFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	return f.format(entry, f.getPrefix(entry.Message), f.formatChromaValue)
}

// getPrefix returns a prefix based on the log message
func (f *ChromaFormatter) getPrefix(message string) string {
	switch {
	case strings.Contains(message, "Color classified"):
		return "CLASSIFY"
	case strings.Contains(message, "Evaluat"):
		return "EVAL"
	case strings.Contains(message, "Rule base"), strings.Contains(message, "Engine"):
		return "RULES"
	case strings.Contains(message, "Sweep"):
		return "SWEEP"
	default:
		return ""
	}
}

// formatChromaValue formats classifier-specific field values
func (f *ChromaFormatter) formatChromaValue(key string, value interface{}) string {
	switch key {
	case "engine_id", "report_id":
		if s, ok := value.(string); ok && len(s) > 8 {
			return s[:8]
		}
	case "red", "green", "blue":
		if v, ok := value.(float64); ok {
			return fmt.Sprintf("%.1f", v)
		}
	case "result", "brightness":
		if v, ok := value.(float64); ok {
			return fmt.Sprintf("%.3f", v)
		}
	}
	return f.formatValue(key, value)
}
