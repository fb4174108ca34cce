// Package commands contains CLI command implementations for the application.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"

	"github.com/zuxercoding99/social-media-api/internal/app"
	authDomain "github.com/zuxercoding99/social-media-api/internal/auth/domain"
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

// parseRoles converts a comma-separated role string into a validated role list.
// Returns an error if any role is not a well-known role name.
func parseRoles(input string) ([]string, error) {
	parts := strings.Split(input, ",")
	roles := make([]string, 0, len(parts))

	for _, part := range parts {
		role := strings.ToUpper(strings.TrimSpace(part))
		if role == "" {
			continue
		}
		switch role {
		case authDomain.RoleUser, authDomain.RoleAdmin:
			roles = append(roles, role)
		default:
			return nil, fmt.Errorf("invalid role: %s (valid options: USER, ADMIN)", role)
		}
	}

	if len(roles) == 0 {
		return nil, fmt.Errorf("at least one role is required")
	}

	return roles, nil
}
