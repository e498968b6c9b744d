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
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	GoogleLogin(ctx context.Context) error
	Forgot(ctx context.Context) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	Files(ctx context.Context) error
	Upload(ctx context.Context, paths []string) error
	Logout(ctx context.Context) error
}

// runREPL reads commands line by line from reader and dispatches them to a.
//
// The reader is shared with the interactive prompts of the commands, so a
// command that asks for further input consumes the following lines. The loop
// ends on EOF or on "exit" / "quit". A failing command prints its error and
// the loop carries on.
//
//	Not logged in: help, register, login, google, forgot, upload, exit
//	Logged in:     help, profile, edit, files, upload, logout, exit
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("caet %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
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
			if a.isLoggedIn() {
				printlnFn("Available commands: profile, edit, files, upload <path>..., logout, exit")
			} else {
				printlnFn("Available commands: register, login, google, forgot, upload <path>..., exit")
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "google":
			cmdErr = a.GoogleLogin(ctx)

		case "forgot":
			cmdErr = a.Forgot(ctx)

		case "profile":
			cmdErr = a.Profile(ctx)

		case "edit":
			cmdErr = a.EditProfile(ctx)

		case "files", "ls":
			cmdErr = a.Files(ctx)

		case "upload":
			if len(args) == 0 {
				printlnFn("Usage: upload <path> [path...]")
				continue
			}
			cmdErr = a.Upload(ctx, args)

		case "logout":
			cmdErr = a.Logout(ctx)

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
