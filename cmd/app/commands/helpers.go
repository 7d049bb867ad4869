// Package commands contains CLI command implementations for the application.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/golang-migrate/migrate/v4"

	"github.com/shopfloor/shopfloor/internal/app"
	"github.com/shopfloor/shopfloor/internal/domain"
)

// IOTuple holds reader and writer for commands, allowing for testing.
type IOTuple struct {
	Reader io.Reader
	Writer io.Writer
}

// DefaultIO returns an IOTuple with os.Stdin and os.Stdout.
func DefaultIO() IOTuple {
	return IOTuple{
		Reader: os.Stdin,
		Writer: os.Stdout,
	}
}

// closeContainer closes all resources in the container and logs any errors.
func closeContainer(container *app.Container, logger *slog.Logger) {
	if err := container.Shutdown(context.Background()); err != nil {
		logger.Error("failed to shutdown container", slog.Any("error", err))
	}
}

// closeMigrate closes the migration instance and logs any errors.
func closeMigrate(migrate *migrate.Migrate, logger *slog.Logger) {
	sourceError, databaseError := migrate.Close()
	if sourceError != nil || databaseError != nil {
		logger.Error(
			"failed to close the migrate",
			slog.Any("source_error", sourceError),
			slog.Any("database_error", databaseError),
		)
	}
}

// textOutput is a command result that can print itself for humans.
type textOutput interface {
	printText(w io.Writer)
}

// writeOutput prints value as indented JSON when format is "json" and as text
// otherwise.
func writeOutput(writer io.Writer, format string, value textOutput) error {
	switch format {
	case "json":
		jsonBytes, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, _ = fmt.Fprintln(writer, string(jsonBytes))
	case "text", "":
		value.printText(writer)
	default:
		return fmt.Errorf("invalid format: %s (valid options: text, json)", format)
	}
	return nil
}

const dateLayout = "2006-01-02"

// parseDate parses a YYYY-MM-DD day. An empty string is the zero time so the
// builder reports the field as missing.
func parseDate(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: %q (expected YYYY-MM-DD)", name, value)
	}
	return domain.DateOf(t), nil
}

var dateTimeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02 15:04"}

// parseDateTime accepts RFC 3339 or "YYYY-MM-DD HH:MM[:SS]" in UTC.
func parseDateTime(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid %s: %q (expected RFC 3339 or YYYY-MM-DD HH:MM)", name, value)
}

// parseTimeOfDay parses HH:MM[:SS]; empty yields nil.
func parseTimeOfDay(name, value string) (*domain.TimeOfDay, error) {
	if value == "" {
		return nil, nil
	}
	t, err := domain.ParseTimeOfDay(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return &t, nil
}

// parseOptional applies parse to non-empty values only.
func parseOptional[T ~string](value string, parse func(string) (T, error)) (T, error) {
	if value == "" {
		return "", nil
	}
	return parse(value)
}
