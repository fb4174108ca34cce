package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/zuxercoding99/social-media-api/cmd/app/commands"
	"github.com/zuxercoding99/social-media-api/internal/app"
	"github.com/zuxercoding99/social-media-api/internal/config"
)

func getAuthCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "clean-expired-credentials",
			Usage: "Delete refresh credentials that expired more than the specified days ago",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:     "days",
					Aliases:  []string{"d"},
					Required: true,
					Usage:    "Delete credentials that expired more than this many days ago",
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

				refreshRepo, err := container.RefreshCredentialRepository()
				if err != nil {
					return err
				}

				return commands.RunCleanExpiredCredentials(
					ctx,
					refreshRepo,
					container.Logger(),
					commands.DefaultIO().Writer,
					int(cmd.Int("days")),
					cmd.String("format"),
				)
			},
		},
	}
}
