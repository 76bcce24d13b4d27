package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/libris/internal/client/grpcclient"
)

var borrowingHeader = []string{"ID", "BOOK", "USER", "BORROWED", "DUE", "RETURNED", "STATUS"}

func borrowingRow(b grpcclient.Borrowing) []string {
	returned := "-"
	if b.ReturnDate != nil {
		returned = day(*b.ReturnDate)
	}
	st := b.EffectiveStatus
	if st == "" {
		st = b.Status
	}
	return []string{b.ID, b.BookID, b.UserID, day(b.BorrowDate), day(b.DueDate), returned, st}
}

// parseDue accepts a calendar date (end of that day, UTC) or RFC 3339.
func parseDue(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("invalid --due %q: use YYYY-MM-DD or RFC 3339", s)
	}
	t := d.Add(24*time.Hour - time.Second)
	return &t, nil
}

func (a *App) showBorrowing(b *grpcclient.Borrowing) error {
	return a.render(b, borrowingHeader, func() [][]string { return [][]string{borrowingRow(*b)} })
}

func (a *App) borrowCommand() *cobra.Command {
	var dueFlag string

	cmd := &cobra.Command{
		Use:   "borrow <bookId> <userId>",
		Short: "Lend a book to a member",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			due, err := parseDue(dueFlag)
			if err != nil {
				return err
			}

			c, ctx, cancel, err := a.connect(cmd)
			if err != nil {
				return err
			}
			defer cancel()

			b, err := c.Borrow(ctx, args[0], args[1], due)
			if err != nil {
				return err
			}
			return a.showBorrowing(b)
		},
	}
	cmd.Flags().StringVar(&dueFlag, "due", "", "due date (YYYY-MM-DD or RFC 3339); defaults to the server's loan period")
	return cmd
}

func (a *App) returnCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "return <borrowingId>",
		Short: "Record the return of a borrowed book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ctx, cancel, err := a.connect(cmd)
			if err != nil {
				return err
			}
			defer cancel()

			b, err := c.Return(ctx, args[0])
			if err != nil {
				return err
			}
			return a.showBorrowing(b)
		},
	}
}

func (a *App) borrowingsCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "borrowings", Short: "Inspect borrowings"}
	cmd.AddCommand(&cobra.Command{
		Use:  "get <id>",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ctx, cancel, err := a.connect(cmd)
			if err != nil {
				return err
			}
			defer cancel()

			b, err := c.GetBorrowing(ctx, args[0])
			if err != nil {
				return err
			}
			return a.showBorrowing(b)
		},
	})
	return cmd
}
