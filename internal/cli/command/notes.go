package command

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/flexnotes/flexnotes-go/internal/cli/output"
)

// NotesCommand creates the notes command group.
func NotesCommand() *cli.Command {
	return &cli.Command{
		Name:  "notes",
		Usage: "manage notes",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list note summaries",
				Action: func(c *cli.Context) error {
					notes, err := apiClient(c).ListNotes(c.Context)
					if err != nil {
						return err
					}
					if c.String("output") == "json" {
						return render(c, notes)
					}
					table := &output.Table{Headers: []string{"ID", "TITLE", "TAGS"}}
					for _, n := range notes {
						table.Add(n.ID, n.Title, strings.Join(n.Tags, ","))
					}
					return render(c, table)
				},
			},
			{
				Name:      "get",
				Usage:     "show one note",
				ArgsUsage: "<note-id>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return fmt.Errorf("usage: notes get <note-id>")
					}
					note, err := apiClient(c).GetNote(c.Context, c.Args().Get(0))
					if err != nil {
						return err
					}
					return render(c, note)
				},
			},
			{
				Name:      "create",
				Usage:     "create a note",
				ArgsUsage: "<title>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "content", Usage: "note body"},
					&cli.StringSliceFlag{Name: "tag", Usage: "tag (repeatable)"},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return fmt.Errorf("usage: notes create <title>")
					}
					note, err := apiClient(c).CreateNote(c.Context, c.Args().Get(0), c.String("content"), c.StringSlice("tag"))
					if err != nil {
						return err
					}
					return render(c, note)
				},
			},
			{
				Name:      "update",
				Usage:     "replace a note's title, content, and tags",
				ArgsUsage: "<note-id> <title>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "content", Usage: "note body"},
					&cli.StringSliceFlag{Name: "tag", Usage: "tag (repeatable)"},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() != 2 {
						return fmt.Errorf("usage: notes update <note-id> <title>")
					}
					return apiClient(c).UpdateNote(c.Context, c.Args().Get(0), c.Args().Get(1), c.String("content"), c.StringSlice("tag"))
				},
			},
			{
				Name:      "delete",
				Usage:     "delete a note",
				ArgsUsage: "<note-id>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return fmt.Errorf("usage: notes delete <note-id>")
					}
					return apiClient(c).DeleteNote(c.Context, c.Args().Get(0))
				},
			},
			{
				Name:      "pin",
				Usage:     "pin a todo list to a note",
				ArgsUsage: "<note-id> <list-id>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 2 {
						return fmt.Errorf("usage: notes pin <note-id> <list-id>")
					}
					return apiClient(c).Pin(c.Context, c.Args().Get(0), c.Args().Get(1))
				},
			},
			{
				Name:      "unpin",
				Usage:     "unpin a todo list from a note",
				ArgsUsage: "<note-id> <list-id>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 2 {
						return fmt.Errorf("usage: notes unpin <note-id> <list-id>")
					}
					return apiClient(c).Unpin(c.Context, c.Args().Get(0), c.Args().Get(1))
				},
			},
			{
				Name:      "pinned",
				Usage:     "show the todo lists pinned to a note",
				ArgsUsage: "<note-id>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return fmt.Errorf("usage: notes pinned <note-id>")
					}
					lists, err := apiClient(c).PinnedLists(c.Context, c.Args().Get(0))
					if err != nil {
						return err
					}
					if c.String("output") == "json" {
						return render(c, lists)
					}
					table := &output.Table{Headers: []string{"ID", "TITLE", "TODOS"}}
					for _, l := range lists {
						table.Add(l.ID, l.Title, fmt.Sprintf("%d", len(l.Todos)))
					}
					return render(c, table)
				},
			},
		},
	}
}
