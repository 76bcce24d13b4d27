// Package cli implements the libris command-line client on top of
// grpcclient.
package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/libris/internal/client/grpcclient"
)

// LibraryClient is the subset of *grpcclient.Client the commands use.
type LibraryClient interface {
	ListBooks(ctx context.Context, q grpcclient.BookQuery) (*grpcclient.BookPage, error)
	GetBook(ctx context.Context, id string) (*grpcclient.Book, error)
	CreateBook(ctx context.Context, title, author, isbn string) (*grpcclient.Book, error)
	DeleteBook(ctx context.Context, id string) error
	ListAuthors(ctx context.Context, page, limit int) ([]grpcclient.Author, error)
	GetAuthor(ctx context.Context, id string) (*grpcclient.Author, error)
	CreateAuthor(ctx context.Context, name, nationality string, birthYear *int) (*grpcclient.Author, error)
	ListUsers(ctx context.Context, page, limit int) ([]grpcclient.User, error)
	CreateUser(ctx context.Context, name, email string) (*grpcclient.User, error)
	Borrow(ctx context.Context, bookID, userID string, due *time.Time) (*grpcclient.Borrowing, error)
	Return(ctx context.Context, borrowingID string) (*grpcclient.Borrowing, error)
	GetBorrowing(ctx context.Context, id string) (*grpcclient.Borrowing, error)
	Close() error
}

// Dialer connects to the server at addr.
type Dialer func(addr string) (LibraryClient, error)

func grpcDialer(addr string) (LibraryClient, error) {
	return grpcclient.New(addr)
}

type App struct {
	dial    Dialer
	out     io.Writer
	addr    string
	output  string
	timeout time.Duration
	client  LibraryClient
}

// NewRootCommand builds the libris command tree. Output goes to out.
func NewRootCommand(dial Dialer, out io.Writer) *cobra.Command {
	a := &App{dial: dial, out: out}

	root := &cobra.Command{
		Use:           "libris",
		Short:         "Command-line client for the Libris library service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.client == nil {
				return nil
			}
			return a.client.Close()
		},
	}
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.StringVar(&a.addr, "addr", envOr("LIBRIS_GRPC_ADDR", "localhost:50051"), "gRPC server address")
	pf.StringVarP(&a.output, "output", "o", "auto", "output format: table, json or auto")
	pf.DurationVar(&a.timeout, "timeout", 10*time.Second, "per-request timeout")

	root.AddCommand(
		a.booksCommand(),
		a.authorsCommand(),
		a.usersCommand(),
		a.borrowCommand(),
		a.returnCommand(),
		a.borrowingsCommand(),
	)
	return root
}

// Execute runs the client against os.Args and returns the exit code.
func Execute() int {
	root := NewRootCommand(grpcDialer, os.Stdout)
	if err := root.Execute(); err != nil {
		root.PrintErrln("Error:", err)
		return 1
	}
	return 0
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// connect dials once per invocation and bounds the call with --timeout.
func (a *App) connect(cmd *cobra.Command) (LibraryClient, context.Context, context.CancelFunc, error) {
	if a.client == nil {
		c, err := a.dial(a.addr)
		if err != nil {
			return nil, nil, nil, err
		}
		a.client = c
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), a.timeout)
	return a.client, ctx, cancel, nil
}
