package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/flexnotes/flexnotes-go/internal/cli/output"
	"github.com/flexnotes/flexnotes-go/internal/core/domain"
)

// TodoListsCommand creates the todolists command group.
func TodoListsCommand() *cli.Command {
	return &cli.Command{
		Name:    "todolists",
		Aliases: []string{"lists"},
		Usage:   "manage todo lists and their todos",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list all todo lists",
				Action: func(c *cli.Context) error {
					lists, err := apiClient(c).ListTodoLists(c.Context)
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
			{
				Name:      "get",
				Usage:     "show one todo list with its todos",
				ArgsUsage: "<list-id>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return fmt.Errorf("usage: todolists get <list-id>")
					}
					list, err := apiClient(c).GetTodoList(c.Context, c.Args().Get(0))
					if err != nil {
						return err
					}
					if c.String("output") == "json" {
						return render(c, list)
					}
					table := &output.Table{Headers: []string{"ID", "TITLE", "DONE", "PRIORITY"}}
					for _, todo := range list.Todos {
						table.Add(todo.ID, todo.Title, fmt.Sprintf("%t", todo.Status), string(todo.Priority))
					}
					return render(c, table)
				},
			},
			{
				Name:      "create",
				Usage:     "create an empty todo list",
				ArgsUsage: "<title>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return fmt.Errorf("usage: todolists create <title>")
					}
					list, err := apiClient(c).CreateTodoList(c.Context, c.Args().Get(0))
					if err != nil {
						return err
					}
					return render(c, list)
				},
			},
			{
				Name:      "rename",
				Usage:     "rename a todo list",
				ArgsUsage: "<list-id> <title>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 2 {
						return fmt.Errorf("usage: todolists rename <list-id> <title>")
					}
					return apiClient(c).RenameTodoList(c.Context, c.Args().Get(0), c.Args().Get(1))
				},
			},
			{
				Name:      "delete",
				Usage:     "delete a todo list",
				ArgsUsage: "<list-id>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return fmt.Errorf("usage: todolists delete <list-id>")
					}
					return apiClient(c).DeleteTodoList(c.Context, c.Args().Get(0))
				},
			},
			{
				Name:      "add",
				Usage:     "add a todo to a list",
				ArgsUsage: "<list-id> <title>",
				Flags:     todoFlags(),
				Action: func(c *cli.Context) error {
					if c.NArg() != 2 {
						return fmt.Errorf("usage: todolists add <list-id> <title>")
					}
					todo, err := apiClient(c).AddTodo(c.Context, c.Args().Get(0), c.Args().Get(1), c.Bool("done"), c.String("priority"))
					if err != nil {
						return err
					}
					return render(c, todo)
				},
			},
			{
				Name:      "modify",
				Usage:     "replace a todo's title, status, and priority",
				ArgsUsage: "<list-id> <todo-id> <title>",
				Flags:     todoFlags(),
				Action: func(c *cli.Context) error {
					if c.NArg() != 3 {
						return fmt.Errorf("usage: todolists modify <list-id> <todo-id> <title>")
					}
					return apiClient(c).ModifyTodo(c.Context, c.Args().Get(0), c.Args().Get(1), c.Args().Get(2), c.Bool("done"), c.String("priority"))
				},
			},
			{
				Name:      "remove",
				Usage:     "remove a todo from a list",
				ArgsUsage: "<list-id> <todo-id>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 2 {
						return fmt.Errorf("usage: todolists remove <list-id> <todo-id>")
					}
					return apiClient(c).RemoveTodo(c.Context, c.Args().Get(0), c.Args().Get(1))
				},
			},
		},
	}
}

func todoFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: "done", Usage: "mark the todo as completed"},
		&cli.StringFlag{
			Name:  "priority",
			Usage: "priority: high, normal, low",
			Value: string(domain.PriorityNormal),
		},
	}
}
