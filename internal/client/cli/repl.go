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
	Receipts(ctx context.Context) error
	AddReceipt(ctx context.Context) error
	ScanReceipt(ctx context.Context) error
	EditReceipt(ctx context.Context) error
	DeleteReceipt(ctx context.Context) error
	Cars(ctx context.Context) error
	AddCar(ctx context.Context) error
	EditCar(ctx context.Context) error
	DeleteCar(ctx context.Context) error
	SetDefaultCar(ctx context.Context) error
	Stats(ctx context.Context) error
	Export(ctx context.Context) error
	Profile(ctx context.Context) error
	ChangePassword(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the FuelTrack CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - register       — create an account
//	  - login          — authenticate
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - list           — list fuel receipts
//	  - add            — record a receipt manually
//	  - scan           — upload a receipt photo and confirm the extraction
//	  - edit           — change an existing receipt
//	  - delete         — remove a receipt
//	  - cars           — list vehicles
//	  - addcar | editcar | delcar | setdefault
//	  - stats          — show spending and efficiency statistics
//	  - export         — write receipts to a CSV or JSON file
//	  - profile        — view or update the account profile
//	  - passwd         — change the account password
//	  - logout         — log out
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// report their own errors. This keeps the REPL loop resilient and focused
// on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("fuel> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, add, scan, edit, delete, cars, addcar, editcar, delcar, setdefault, stats, export, profile, passwd, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "l", "list":
			_ = a.Receipts(ctx)

		case "add":
			_ = a.AddReceipt(ctx)

		case "scan":
			_ = a.ScanReceipt(ctx)

		case "edit":
			_ = a.EditReceipt(ctx)

		case "delete":
			_ = a.DeleteReceipt(ctx)

		case "cars":
			_ = a.Cars(ctx)

		case "addcar":
			_ = a.AddCar(ctx)

		case "editcar":
			_ = a.EditCar(ctx)

		case "delcar":
			_ = a.DeleteCar(ctx)

		case "setdefault":
			_ = a.SetDefaultCar(ctx)

		case "stats":
			_ = a.Stats(ctx)

		case "export":
			_ = a.Export(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "passwd":
			_ = a.ChangePassword(ctx)

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
