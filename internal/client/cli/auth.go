package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/wealthwise/internal/common"
)

// Login prompts for credentials, offering the last used email. When the
// backend is unreachable the gateway signs in with the demo identity and
// the prompt switches to offline.
func (a *App) Login(ctx context.Context, args []string) error {
	def := a.authService.LastEmail(ctx)
	if len(args) > 0 {
		def = args[0]
	}
	email, err := GetTextOr(a.reader, "Enter email", def, a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.authService.Login(ctx, email, string(password))
	if err != nil {
		a.log.Warn(ctx, "login failed", "email", email, "error", err)
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s\n", s.User.Email)
	return nil
}

func (a *App) Signup(ctx context.Context, _ []string) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	confirm, err := getPassword("Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	s, err := a.authService.Signup(ctx, email, string(password), string(confirm))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Account created, logged in as %s\n", s.User.Email)
	return nil
}

func (a *App) Logout(ctx context.Context, _ []string) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context, _ []string) error {
	u, err := a.authService.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s (%s)\n", u.Email, u.ID)
	return nil
}

// Status prints connectivity, the session and the last journaled snapshot.
func (a *App) Status(ctx context.Context, _ []string) error {
	fmt.Fprintf(a.out, "mode:      %s\n", a.Mode())
	if a.config != nil {
		fmt.Fprintf(a.out, "backend:   %s\n", a.config.BaseURL)
		if a.config.SimulatedAuth {
			fmt.Fprintln(a.out, "auth:      simulated")
		}
	}
	if cur := a.authService.Current(); cur.Authenticated() {
		fmt.Fprintf(a.out, "user:      %s\n", cur.User.Email)
	} else {
		fmt.Fprintln(a.out, "user:      (not logged in)")
	}
	if a.netWorthService != nil {
		if at, ok := a.netWorthService.LastSync(ctx); ok {
			fmt.Fprintf(a.out, "last sync: %s\n", at.Local().Format("2006-01-02 15:04:05"))
		}
	}
	return nil
}
