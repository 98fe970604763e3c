package cli

import (
	"bufio"
	"context"
	"fmt"
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
	Logout(ctx context.Context) error
	Profile(ctx context.Context) error
	UpdateProfile(ctx context.Context) error
	Open(ctx context.Context, name string) error
}

// runREPL starts a simple read–eval–print loop for the WastePoint client.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - register       — create an account
//	  - login          — authenticate
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - whoami         — show the signed-in identity
//	  - profile        — show the current user
//	  - update         — update profile fields
//	  - open <view>    — open a page (reports, collectors, schedule,
//	                     requests, pickups, payments)
//	  - logout         — log out
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers and the
// session layer surface their own messages. This keeps the REPL loop
// resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("wp %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, profile, update, open <view>, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "whoami":
			if s := statusFn(); s != "" {
				printlnFn(s)
			} else {
				printlnFn("Not logged in")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "update":
			_ = a.UpdateProfile(ctx)

		case "open":
			if len(args) == 0 {
				printlnFn("Usage: open <view>")
				continue
			}
			_ = a.Open(ctx, args[0])

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
