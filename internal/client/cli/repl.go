package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Me(ctx context.Context) error
	Profile(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Show(ctx context.Context, id string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Toggle(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// runREPL reads commands line by line and dispatches them to a. Command
// handlers report their own errors; the loop ends on EOF or exit/quit.
//
//	Always:    help, list [mine|available|unavailable], show <id>, exit
//	Logged out: register, login
//	Logged in:  me, profile, add, edit <id>, toggle <id>, delete <id>, logout
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printFn(fmt.Sprintf("res%s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		withID := func(f func(context.Context, string) error) {
			if len(args) != 1 {
				printlnFn("Usage:", cmd, "<id>")
				return
			}
			_ = f(ctx, args[0])
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist [mine|available|unavailable], show <id>, add, edit <id>, toggle <id>, delete <id>, me, profile, logout, exit")
			} else {
				printlnFn("Available commands: register, login, (l)ist [available|unavailable], show <id>, exit")
			}
		case "register":
			_ = a.Register(ctx)
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "me":
			_ = a.Me(ctx)
		case "profile":
			_ = a.Profile(ctx)
		case "l", "list":
			_ = a.List(ctx, args)
		case "show":
			withID(a.Show)
		case "add":
			_ = a.Add(ctx)
		case "edit":
			withID(a.Edit)
		case "toggle":
			withID(a.Toggle)
		case "delete", "rm":
			withID(a.Delete)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

// printlnFn and printFn are test seams for REPL output.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)
