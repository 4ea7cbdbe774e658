// submodule cmd contains command definitions
package main

import (
	"strings"

	"github.com/achasveachas/yt-tutorial-dashboard/internal/formatter"
	"github.com/urfave/cli/v3"
)

func (r *Runner) app() *cli.Command {
	return &cli.Command{
		Name:     "ytdash",
		Usage:    "Serve and administer the YouTube tutorial playlist API",
		Version:  "0.1.0",
		Commands: r.register(),
	}
}

// configFlags are shared by every command that reads configuration.
func configFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
			Value:   "config.toml",
		},
		&cli.StringSliceFlag{
			Name:  "env-file",
			Usage: "Dotenv files to load before reading YTDASH_* variables",
			Value: []string{".env"},
		},
	}
}

func credentialFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "username",
			Aliases:  []string{"u"},
			Usage:    "Account username",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "password",
			Aliases:  []string{"p"},
			Usage:    "Account password",
			Sources:  cli.EnvVars("YTDASH_PASSWORD"),
			Required: true,
		},
	}
}

func ownerFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "username",
		Aliases:  []string{"u"},
		Usage:    "Owner of the playlists",
		Required: true,
	}
}

func withFlags(groups ...[]cli.Flag) []cli.Flag {
	flags := []cli.Flag{}
	for _, group := range groups {
		flags = append(flags, group...)
	}
	return flags
}

// serveCommand runs the HTTP API
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the playlist API server",
		Flags: withFlags(configFlags(), []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Override server.host",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Override server.port",
			},
		}),
		Action: r.Serve,
	}
}

// setupCommand prepares configuration and the database
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and database",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Write an example config.toml",
				Flags:  configFlags(),
				Action: r.SetupConfig,
			},
			{
				Name:   "database",
				Usage:  "Create the database and run migrations",
				Flags:  configFlags(),
				Action: r.SetupDatabase,
			},
			{
				Name:   "rollback",
				Usage:  "Roll back the most recent migration",
				Flags:  configFlags(),
				Action: r.RollbackDatabase,
			},
			{
				Name:   "status",
				Usage:  "Show applied migrations",
				Flags:  configFlags(),
				Action: r.MigrationStatus,
			},
		},
	}
}

// usersCommand manages API accounts
func usersCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "users",
		Usage: "Manage API users",
		Commands: []*cli.Command{
			{
				Name:   "create",
				Usage:  "Create a user",
				Flags:  withFlags(configFlags(), credentialFlags()),
				Action: r.CreateUser,
			},
			{
				Name:  "list",
				Usage: "List users",
				Flags: withFlags(configFlags(), []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				}),
				Action: r.ListUsers,
			},
		},
	}
}

// tokenCommand issues bearer tokens
func tokenCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "Issue API tokens",
		Commands: []*cli.Command{
			{
				Name:  "issue",
				Usage: "Print an Authorization header value for a user",
				Flags: withFlags(configFlags(), credentialFlags(), []cli.Flag{
					&cli.BoolFlag{
						Name:  "raw",
						Usage: "Print only the token, without the Bearer: prefix",
					},
				}),
				Action: r.IssueToken,
			},
		},
	}
}

// playlistsCommand inspects stored playlists
func playlistsCommand(r *Runner) *cli.Command {
	formats := make([]string, 0, len(formatter.Formats))
	for _, f := range formatter.Formats {
		formats = append(formats, string(f))
	}

	return &cli.Command{
		Name:  "playlists",
		Usage: "Inspect a user's playlists",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List a user's playlists with video counts",
				Flags:  withFlags(configFlags(), []cli.Flag{ownerFlag()}),
				Action: r.ListPlaylists,
			},
			{
				Name:  "export",
				Usage: "Export a user's playlists and videos",
				Flags: withFlags(configFlags(), []cli.Flag{
					ownerFlag(),
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format (" + strings.Join(formats, ", ") + ")",
						Value:   string(formatter.FormatJSON),
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file or directory (stdout when empty)",
					},
				}),
				Action: r.ExportPlaylists,
			},
		},
	}
}
