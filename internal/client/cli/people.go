package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/libris/internal/client/grpcclient"
)

var (
	authorHeader = []string{"ID", "NAME", "NATIONALITY", "BORN"}
	userHeader   = []string{"ID", "NAME", "EMAIL", "STATUS", "MEMBER SINCE"}
)

func authorRow(x grpcclient.Author) []string {
	born := "-"
	if x.BirthYear != nil {
		born = strconv.Itoa(*x.BirthYear)
	}
	return []string{x.ID, x.Name, x.Nationality, born}
}

func userRow(u grpcclient.User) []string {
	return []string{u.ID, u.Name, u.Email, u.Status, day(u.MembershipDate)}
}

func (a *App) authorsCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "authors", Short: "List and add authors"}

	var page, limit int
	list := &cobra.Command{
		Use:  "list",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ctx, cancel, err := a.connect(cmd)
			if err != nil {
				return err
			}
			defer cancel()

			authors, err := c.ListAuthors(ctx, page, limit)
			if err != nil {
				return err
			}
			return a.render(authors, authorHeader, func() [][]string {
				rows := make([][]string, 0, len(authors))
				for _, x := range authors {
					rows = append(rows, authorRow(x))
				}
				return rows
			})
		},
	}
	list.Flags().IntVar(&page, "page", 1, "page number")
	list.Flags().IntVar(&limit, "limit", 10, "page size")

	get := &cobra.Command{
		Use:  "get <id>",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ctx, cancel, err := a.connect(cmd)
			if err != nil {
				return err
			}
			defer cancel()

			x, err := c.GetAuthor(ctx, args[0])
			if err != nil {
				return err
			}
			return a.render(x, authorHeader, func() [][]string { return [][]string{authorRow(*x)} })
		},
	}

	var name, nationality string
	var born int
	add := &cobra.Command{
		Use:  "add",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ctx, cancel, err := a.connect(cmd)
			if err != nil {
				return err
			}
			defer cancel()

			var year *int
			if cmd.Flags().Changed("born") {
				year = &born
			}
			x, err := c.CreateAuthor(ctx, name, nationality, year)
			if err != nil {
				return err
			}
			return a.render(x, authorHeader, func() [][]string { return [][]string{authorRow(*x)} })
		},
	}
	add.Flags().StringVar(&name, "name", "", "author name")
	add.Flags().StringVar(&nationality, "nationality", "", "nationality")
	add.Flags().IntVar(&born, "born", 0, "birth year")
	_ = add.MarkFlagRequired("name")

	cmd.AddCommand(list, get, add)
	return cmd
}

func (a *App) usersCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "users", Short: "List and register members"}

	var page, limit int
	list := &cobra.Command{
		Use:  "list",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ctx, cancel, err := a.connect(cmd)
			if err != nil {
				return err
			}
			defer cancel()

			users, err := c.ListUsers(ctx, page, limit)
			if err != nil {
				return err
			}
			return a.render(users, userHeader, func() [][]string {
				rows := make([][]string, 0, len(users))
				for _, u := range users {
					rows = append(rows, userRow(u))
				}
				return rows
			})
		},
	}
	list.Flags().IntVar(&page, "page", 1, "page number")
	list.Flags().IntVar(&limit, "limit", 10, "page size")

	var name, email string
	add := &cobra.Command{
		Use:  "add",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ctx, cancel, err := a.connect(cmd)
			if err != nil {
				return err
			}
			defer cancel()

			u, err := c.CreateUser(ctx, name, email)
			if err != nil {
				return err
			}
			return a.render(u, userHeader, func() [][]string { return [][]string{userRow(*u)} })
		},
	}
	add.Flags().StringVar(&name, "name", "", "member name")
	add.Flags().StringVar(&email, "email", "", "member email")
	_ = add.MarkFlagRequired("name")
	_ = add.MarkFlagRequired("email")

	cmd.AddCommand(list, add)
	return cmd
}
