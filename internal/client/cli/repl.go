package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests use a recording stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context, args []string) error
	Signup(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	WhoAmI(ctx context.Context, args []string) error
	Portfolios(ctx context.Context, args []string) error
	AddPortfolio(ctx context.Context, args []string) error
	EditPortfolio(ctx context.Context, args []string) error
	RemovePortfolio(ctx context.Context, args []string) error
	Assets(ctx context.Context, args []string) error
	AddAsset(ctx context.Context, args []string) error
	EditAsset(ctx context.Context, args []string) error
	RemoveAsset(ctx context.Context, args []string) error
	Valuations(ctx context.Context, args []string) error
	NetWorth(ctx context.Context, args []string) error
	Top(ctx context.Context, args []string) error
	History(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
	Status(ctx context.Context, args []string) error
}

const (
	helpGuest    = "Available commands: login, signup, status, help, exit"
	helpLoggedIn = "Available commands: portfolios, addportfolio, editportfolio <id>, rmportfolio <id>, " +
		"assets <portfolio>, addasset <portfolio>, editasset <portfolio> <asset>, rmasset <portfolio> <asset>, " +
		"valuations <portfolio> [period], networth [remote], top [n], " +
		"history [1m|3m|6m|1y|all|from..to] [local], export [csv|json], whoami, status, logout, exit"
)

// runREPL reads commands from scanner until EOF, "exit" or "quit". Command
// errors are printed and the loop continues; commands that need a session
// are refused while logged out.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	type handler func(context.Context, []string) error

	guest := map[string]handler{
		"login":  a.Login,
		"signup": a.Signup,
		"status": a.Status,
	}
	member := map[string]handler{
		"logout":        a.Logout,
		"whoami":        a.WhoAmI,
		"portfolios":    a.Portfolios,
		"addportfolio":  a.AddPortfolio,
		"editportfolio": a.EditPortfolio,
		"rmportfolio":   a.RemovePortfolio,
		"assets":        a.Assets,
		"addasset":      a.AddAsset,
		"editasset":     a.EditAsset,
		"rmasset":       a.RemoveAsset,
		"valuations":    a.Valuations,
		"networth":      a.NetWorth,
		"top":           a.Top,
		"history":       a.History,
		"export":        a.Export,
	}

	for {
		printlnFn(fmt.Sprintf("ww %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "exit", "quit":
			printlnFn("Bye!")
			return
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpGuest)
			}
			continue
		}

		h, ok := guest[cmd]
		if !ok {
			h, ok = member[cmd]
			if ok && !a.isLoggedIn() {
				printlnFn("Please log in first")
				continue
			}
		}
		if !ok {
			printlnFn("Unknown command:", cmd)
			continue
		}
		if err := h(ctx, args); err != nil {
			printlnFn("Error:", describe(err))
		}
	}
}
