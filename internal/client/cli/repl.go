package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
type execIface interface {
	List(ctx context.Context) error
	Tree(ctx context.Context) error
	Upload(ctx context.Context) error
	Download(ctx context.Context, serverFilename string) error
	SetToken(ctx context.Context) error
}

const helpText = "Available commands: (l)ist, tree, upload, download <serverFilename>, token, exit"

// runREPL reads commands from reader until EOF, "exit" or "quit", or until
// ctx is done. Command errors are reported and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("softhub %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			printlnFn(helpText)

		case "l", "list":
			cmdErr = a.List(ctx)

		case "tree":
			cmdErr = a.Tree(ctx)

		case "upload":
			cmdErr = a.Upload(ctx)

		case "download":
			if len(args) != 1 {
				printlnFn("Usage: download <serverFilename>")
				continue
			}
			cmdErr = a.Download(ctx, args[0])

		case "token":
			cmdErr = a.SetToken(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
	}
}
