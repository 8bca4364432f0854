// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles database initialization.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize database and run migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.SetupDatabase,
	}
}

// authCommand handles the email verification login flow
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage authentication",
		Commands: []*cli.Command{
			{
				Name:  "code",
				Usage: "Email a one-time verification code to an address",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "email"},
				},
				Action: r.AuthRequestCode,
			},
			{
				Name:  "login",
				Usage: "Verify a code and establish a session",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "email"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "code",
						Usage:    "Verification code received by email",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "name",
						Usage: "Display name for the account",
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "Clear the active session",
				Action: r.AuthLogout,
			},
			{
				Name:    "whoami",
				Aliases: []string{"me"},
				Usage:   "Show the active session",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.AuthWhoami,
			},
		},
	}
}

// catalogCommand handles catalog browsing operations
func catalogCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "catalog",
		Aliases: []string{"cat"},
		Usage:   "Browse and refresh the movie catalog",
		Commands: []*cli.Command{
			{
				Name:  "refresh",
				Usage: "Fetch fresh catalog sections and update the local cache",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.CatalogRefresh,
			},
			{
				Name:  "list",
				Usage: "Show the cached catalog sections",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "section"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.CatalogList,
			},
			{
				Name:  "search",
				Usage: "Search the catalog by title",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "query"},
				},
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results to show",
						Value: 20,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.CatalogSearch,
			},
		},
	}
}

// favoritesCommand handles the personal list
func favoritesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "favorites",
		Aliases: []string{"fav", "mylist"},
		Usage:   "Manage your personal list",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "Show saved titles",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.FavoritesList,
			},
			{
				Name:  "toggle",
				Usage: "Add or remove a title by name",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "title"},
				},
				Action: r.FavoritesToggle,
			},
			{
				Name:  "export",
				Usage: "Export the list to CSV or a Markdown bundle",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Usage: "Export format (csv, markdown or text)",
						Value: "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file base or directory",
					},
					&cli.StringFlag{
						Name:  "image",
						Usage: "Cover image URL for the Markdown bundle",
					},
				},
				Action: r.FavoritesExport,
			},
		},
	}
}

// channelsCommand handles live IPTV channel listings
func channelsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "channels",
		Aliases: []string{"tv", "iptv"},
		Usage:   "Live TV channel operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List channels from all configured playlists",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "group",
						Usage: "Only show channels from this group",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.ChannelsList,
			},
			{
				Name:  "fetch",
				Usage: "Fetch and parse a single M3U playlist URL",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "url"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.ChannelsFetch,
			},
		},
	}
}

// usersCommand handles the local subscriber ledger
func usersCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "users",
		Aliases: []string{"ledger"},
		Usage:   "Subscriber ledger operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List every registered subscriber",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.UsersList,
			},
			{
				Name:  "export",
				Usage: "Export the ledger to JSON or CSV",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Usage: "Export format (json or csv)",
						Value: "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file base path",
					},
				},
				Action: r.UsersExport,
			},
			{
				Name:  "notify",
				Usage: "Send a product update email to every subscriber",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "title",
						Usage:    "Message subject",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "message",
						Usage:    "Message body",
						Required: true,
					},
				},
				Action: r.UsersNotify,
			},
		},
	}
}

// assistantCommand handles catalog-aware recommendations
func assistantCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "assistant",
		Aliases: []string{"ai", "alex"},
		Usage:   "Ask the catalog assistant for recommendations",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "question"},
		},
		Action: r.AssistantRecommend,
	}
}

// watchCommand resolves a title or channel and opens the player
func watchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Open a movie or live channel in the browser",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "title"},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "channel",
				Usage: "Treat the argument as a live channel name",
			},
			&cli.BoolFlag{
				Name:  "print",
				Usage: "Print the playback URL instead of opening it",
			},
		},
		Action: r.Watch,
	}
}

// tuiCommand returns the top-level TUI command for interactive browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive catalog browser",
		Action:  r.TUI,
	}
}
