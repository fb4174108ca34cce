package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	userDomain "github.com/zuxercoding99/social-media-api/internal/user/domain"
	userUseCase "github.com/zuxercoding99/social-media-api/internal/user/usecase"
)

// RunCreateUser provisions a new account with an explicit role list.
// Used to bootstrap administrators before the API has any users. Prompts for the
// password interactively when the password flag is empty, so it never lands in
// shell history. Outputs the created account in either text or JSON format.
//
// Requirements: Database must be migrated and accessible.
func RunCreateUser(
	ctx context.Context,
	useCase userUseCase.UseCase,
	logger *slog.Logger,
	username string,
	email string,
	displayName string,
	password string,
	rolesInput string,
	format string,
	io IOTuple,
) error {
	logger.Info("creating new user", slog.String("username", username))

	roles, err := parseRoles(rolesInput)
	if err != nil {
		return err
	}

	// Interactive mode: prompt for the password when not provided via flag
	if password == "" {
		password, err = promptForPassword(io)
		if err != nil {
			return fmt.Errorf("failed to get password: %w", err)
		}
	}

	input := userUseCase.CreateUserInput{
		Username:    username,
		Email:       email,
		DisplayName: displayName,
		Password:    password,
		Roles:       roles,
	}

	user, err := useCase.Create(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	// Output result based on format
	if format == "json" {
		outputUserJSON(user, io.Writer)
	} else {
		outputUserText(user, io.Writer)
	}

	logger.Info("user created successfully",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username),
		slog.String("roles", strings.Join(user.Roles, ",")),
	)

	return nil
}

// promptForPassword reads the password from the interactive reader.
func promptForPassword(io IOTuple) (string, error) {
	reader := bufio.NewReader(io.Reader)

	_, _ = fmt.Fprint(io.Writer, "Enter password: ")
	password, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	password = strings.TrimSpace(password)

	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}

	return password, nil
}

// outputUserText outputs the created account in human-readable text format.
func outputUserText(user *userDomain.User, writer io.Writer) {
	_, _ = fmt.Fprintln(writer, "\nUser created successfully!")
	_, _ = fmt.Fprintf(writer, "User ID: %s\n", user.ID.String())
	_, _ = fmt.Fprintf(writer, "Username: %s\n", user.Username)
	_, _ = fmt.Fprintf(writer, "Email: %s\n", user.Email)
	_, _ = fmt.Fprintf(writer, "Roles: %s\n", strings.Join(user.Roles, ", "))
}

// outputUserJSON outputs the created account in JSON format for machine consumption.
func outputUserJSON(user *userDomain.User, writer io.Writer) {
	result := map[string]interface{}{
		"user_id":  user.ID.String(),
		"username": user.Username,
		"email":    user.Email,
		"roles":    user.Roles,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
