package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/softhub/internal/client/client"
	"github.com/dmitrijs2005/softhub/internal/client/config"
)

type App struct {
	config *config.Config
	client client.Client
	token  string
	online bool
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	if err != nil {
		return nil, err
	}
	return newApp(c, apiClient, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, cl client.Client, in io.Reader, out io.Writer) *App {
	return &App{
		config: c,
		client: cl,
		token:  c.UploadToken,
		reader: bufio.NewReader(in),
		out:    out,
	}
}

func (a *App) getStatus() string {
	var parts []string
	parts = append(parts, a.config.ServerURL)
	if a.online {
		parts = append(parts, "online")
	} else {
		parts = append(parts, "offline")
	}
	if a.token != "" {
		parts = append(parts, "token set")
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
}

// Run checks the server once and starts the REPL.
func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to softhub CLI (type 'help' for commands)")

	a.online = a.client.Ping(ctx) == nil
	if !a.online {
		printlnFn("Server", a.config.ServerURL, "is not reachable")
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}
