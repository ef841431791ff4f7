package command

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// AuthCommand creates the auth command group.
func AuthCommand() *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "register, login, and token management",
		Subcommands: []*cli.Command{
			{
				Name:      "register",
				Usage:     "create an account and print a token pair",
				ArgsUsage: "<username> <email>",
				Flags: []cli.Flag{
					passwordFlag(),
				},
				Action: func(c *cli.Context) error {
					if c.NArg() != 2 {
						return fmt.Errorf("usage: auth register <username> <email>")
					}
					res, err := apiClient(c).Register(c.Context, c.Args().Get(0), c.Args().Get(1), c.String("password"))
					if err != nil {
						return err
					}
					return render(c, res)
				},
			},
			{
				Name:      "login",
				Usage:     "log in and print a token pair",
				ArgsUsage: "<username>",
				Flags: []cli.Flag{
					passwordFlag(),
				},
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return fmt.Errorf("usage: auth login <username>")
					}
					res, err := apiClient(c).Login(c.Context, c.Args().Get(0), c.String("password"))
					if err != nil {
						return err
					}
					return render(c, res)
				},
			},
			{
				Name:      "refresh",
				Usage:     "exchange a refresh token for a fresh pair",
				ArgsUsage: "<refresh-token>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return fmt.Errorf("usage: auth refresh <refresh-token>")
					}
					res, err := apiClient(c).Refresh(c.Context, c.Args().Get(0))
					if err != nil {
						return err
					}
					return render(c, res)
				},
			},
			{
				Name:  "check",
				Usage: "verify that the current token is accepted",
				Action: func(c *cli.Context) error {
					if err := apiClient(c).Check(c.Context); err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, "token is valid")
					return nil
				},
			},
		},
	}
}

func passwordFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "password",
		Aliases:  []string{"p"},
		Usage:    "account password",
		EnvVars:  []string{"FLEXNOTES_PASSWORD"},
		Required: true,
	}
}
