// Package command provides the CLI command definitions for
// flexnotes-cli.
//
// It uses urfave/cli/v2 for command parsing. Authenticated commands
// read the access token from the --token flag or FLEXNOTES_TOKEN.
package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/flexnotes/flexnotes-go/internal/cli/client"
	"github.com/flexnotes/flexnotes-go/internal/cli/output"
	"github.com/flexnotes/flexnotes-go/internal/infra/buildinfo"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "flexnotes-cli",
		Usage:   "command-line client for flexnotes-server",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			AuthCommand(),
			NotesCommand(),
			TodoListsCommand(),
			HealthCommand(),
		},
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "flexnotes server address",
			EnvVars: []string{"FLEXNOTES_SERVER"},
			Value:   "localhost:5080",
		},
		&cli.StringFlag{
			Name:    "token",
			Aliases: []string{"t"},
			Usage:   "access token for authenticated commands",
			EnvVars: []string{"FLEXNOTES_TOKEN"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format: table, json",
			Value:   "table",
		},
	}
}

// apiClient builds a client from the global flags.
func apiClient(c *cli.Context) *client.Client {
	return client.New(c.String("server"), client.WithToken(c.String("token")))
}

// formatter builds the output formatter from the global flags.
func formatter(c *cli.Context) (output.Formatter, error) {
	return output.NewFormatter(c.String("output"))
}

// render writes data with the configured formatter.
func render(c *cli.Context, data any) error {
	f, err := formatter(c)
	if err != nil {
		return err
	}
	return f.Format(c.App.Writer, data)
}

// HealthCommand creates the health command.
func HealthCommand() *cli.Command {
	return &cli.Command{
		Name:  "health",
		Usage: "check server health",
		Action: func(c *cli.Context) error {
			if err := apiClient(c).Health(c.Context); err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, "server is healthy")
			return nil
		},
	}
}
