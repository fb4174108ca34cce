package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	authUseCase "github.com/zuxercoding99/social-media-api/internal/auth/usecase"
)

// RunCleanExpiredCredentials deletes refresh credentials that expired more than
// the specified number of days ago. Supports both text and JSON output formats.
//
// Requirements: Database must be migrated and accessible.
func RunCleanExpiredCredentials(
	ctx context.Context,
	refreshRepo authUseCase.RefreshCredentialRepository,
	logger *slog.Logger,
	writer io.Writer,
	days int,
	format string,
) error {
	// Validate days parameter
	if days < 0 {
		return fmt.Errorf("days must be a positive number, got: %d", days)
	}

	logger.Info("cleaning expired refresh credentials",
		slog.Int("days", days),
	)

	before := time.Now().Add(-time.Duration(days) * 24 * time.Hour)

	count, err := refreshRepo.DeleteExpired(ctx, before)
	if err != nil {
		return fmt.Errorf("failed to cleanup expired refresh credentials: %w", err)
	}

	// Output result based on format
	if format == "json" {
		outputCleanExpiredJSON(count, days, writer)
	} else {
		outputCleanExpiredText(count, days, writer)
	}

	logger.Info("cleanup completed",
		slog.Int64("count", count),
		slog.Int("days", days),
	)

	return nil
}

// outputCleanExpiredText outputs the result in human-readable text format.
func outputCleanExpiredText(count int64, days int, writer io.Writer) {
	_, _ = fmt.Fprintf(writer, "Successfully deleted %d expired credential(s) older than %d day(s)\n", count, days)
}

// outputCleanExpiredJSON outputs the result in JSON format for machine consumption.
func outputCleanExpiredJSON(count int64, days int, writer io.Writer) {
	result := map[string]interface{}{
		"count": count,
		"days":  days,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
