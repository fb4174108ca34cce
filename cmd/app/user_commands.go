package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/zuxercoding99/social-media-api/cmd/app/commands"
	"github.com/zuxercoding99/social-media-api/internal/app"
	"github.com/zuxercoding99/social-media-api/internal/config"
)

func getUserCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-user",
			Usage: "Create a new account with an explicit role list",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "username",
					Aliases:  []string{"u"},
					Required: true,
					Usage:    "Unique username for the account",
				},
				&cli.StringFlag{
					Name:     "email",
					Aliases:  []string{"e"},
					Required: true,
					Usage:    "Unique email address for the account",
				},
				&cli.StringFlag{
					Name:    "display-name",
					Aliases: []string{"n"},
					Usage:   "Human-readable display name (defaults to username)",
				},
				&cli.StringFlag{
					Name:    "password",
					Aliases: []string{"p"},
					Usage:   "Account password (omit for interactive prompt)",
				},
				&cli.StringFlag{
					Name:    "roles",
					Aliases: []string{"r"},
					Value:   "USER",
					Usage:   "Comma-separated roles: USER, ADMIN",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				userUseCase, err := container.UserUseCase()
				if err != nil {
					return err
				}

				displayName := cmd.String("display-name")
				if displayName == "" {
					displayName = cmd.String("username")
				}

				return commands.RunCreateUser(
					ctx,
					userUseCase,
					container.Logger(),
					cmd.String("username"),
					cmd.String("email"),
					displayName,
					cmd.String("password"),
					cmd.String("roles"),
					cmd.String("format"),
					commands.DefaultIO(),
				)
			},
		},
	}
}
