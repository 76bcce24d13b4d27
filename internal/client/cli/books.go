package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/libris/internal/client/grpcclient"
)

var bookHeader = []string{"ID", "TITLE", "AUTHOR", "ISBN", "STATUS"}

func bookRow(b grpcclient.Book) []string {
	return []string{b.ID, b.Title, b.Author, b.ISBN, b.Status}
}

func (a *App) booksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "List and manage books",
	}
	cmd.AddCommand(a.booksListCommand(), a.booksGetCommand(), a.booksAddCommand(), a.booksDeleteCommand())
	return cmd
}

func (a *App) booksListCommand() *cobra.Command {
	var q grpcclient.BookQuery

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List books, filtered and paged",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ctx, cancel, err := a.connect(cmd)
			if err != nil {
				return err
			}
			defer cancel()

			page, err := c.ListBooks(ctx, q)
			if err != nil {
				return err
			}
			if err := a.render(page, bookHeader, func() [][]string {
				rows := make([][]string, 0, len(page.Books))
				for _, b := range page.Books {
					rows = append(rows, bookRow(b))
				}
				return rows
			}); err != nil {
				return err
			}
			if ok, _ := a.useJSON(); !ok {
				fmt.Fprintf(a.out, "page %d of %d, %d books\n", page.Page, page.TotalPages, page.TotalCount)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&q.Title, "title", "", "title contains (case-insensitive)")
	f.StringVar(&q.Author, "author", "", "author contains (case-insensitive)")
	f.StringVar(&q.Status, "status", "", "AVAILABLE, BORROWED, LOST or MAINTENANCE")
	f.StringVar(&q.SortBy, "sort", "", "sort field, optionally with :asc or :desc")
	f.IntVar(&q.Page, "page", 1, "page number")
	f.IntVar(&q.Limit, "limit", 10, "page size")
	return cmd
}

func (a *App) booksGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ctx, cancel, err := a.connect(cmd)
			if err != nil {
				return err
			}
			defer cancel()

			b, err := c.GetBook(ctx, args[0])
			if err != nil {
				return err
			}
			return a.render(b, bookHeader, func() [][]string { return [][]string{bookRow(*b)} })
		},
	}
}

func (a *App) booksAddCommand() *cobra.Command {
	var title, author, isbn string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book to the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ctx, cancel, err := a.connect(cmd)
			if err != nil {
				return err
			}
			defer cancel()

			b, err := c.CreateBook(ctx, title, author, isbn)
			if err != nil {
				return err
			}
			return a.render(b, bookHeader, func() [][]string { return [][]string{bookRow(*b)} })
		},
	}

	f := cmd.Flags()
	f.StringVar(&title, "title", "", "book title")
	f.StringVar(&author, "author", "", "author name")
	f.StringVar(&isbn, "isbn", "", "ISBN")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("author")
	_ = cmd.MarkFlagRequired("isbn")
	return cmd
}

func (a *App) booksDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a book that is not on loan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ctx, cancel, err := a.connect(cmd)
			if err != nil {
				return err
			}
			defer cancel()

			if err := c.DeleteBook(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "deleted %s\n", args[0])
			return nil
		},
	}
}
