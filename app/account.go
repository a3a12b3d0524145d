package app

import (
	"bufio"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/tomato-timer/tomato/auth"
	"github.com/tomato-timer/tomato/internal/logging"
	"github.com/tomato-timer/tomato/internal/pathutil"
	"github.com/tomato-timer/tomato/report"
)

type credentials struct {
	email    string
	password string
	confirm  string
}

// readCredentials collects an email and password from flags, standard input,
// or an interactive form. With --password-stdin the first line of input is
// the password and it doubles as its own confirmation.
func readCredentials(ctx *cli.Context, withConfirm bool) (*credentials, error) {
	c := &credentials{
		email: strings.TrimSpace(ctx.String("email")),
	}

	if ctx.Bool("password-stdin") {
		if c.email == "" {
			return nil, errMissingEmail
		}

		line, err := bufio.NewReader(ctx.App.Reader).ReadString('\n')
		if err != nil && line == "" {
			return nil, errMissingPassword
		}

		c.password = strings.TrimRight(line, "\r\n")
		c.confirm = c.password

		return c, nil
	}

	var fields []huh.Field

	if c.email == "" {
		fields = append(fields, huh.NewInput().Title("Email").Value(&c.email))
	}

	fields = append(fields, huh.NewInput().
		Title("Password").
		EchoMode(huh.EchoModePassword).
		Value(&c.password),
	)

	if withConfirm {
		fields = append(fields, huh.NewInput().
			Title("Confirm password").
			EchoMode(huh.EchoModePassword).
			Value(&c.confirm),
		)
	}

	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return nil, err
	}

	if strings.TrimSpace(c.email) == "" {
		return nil, errMissingEmail
	}

	if c.password == "" {
		return nil, errMissingPassword
	}

	return c, nil
}

func signupAction(ctx *cli.Context) error {
	c, err := readCredentials(ctx, true)
	if err != nil {
		return err
	}

	e, err := newEnv(ctx, false)
	if err != nil {
		return err
	}

	defer e.Close()

	u, err := e.auth.SignUp(ctx.Context, c.email, c.password, c.confirm)
	if err != nil {
		return err
	}

	report.Success("account created: signed in as %s", u.Email)

	return nil
}

func loginAction(ctx *cli.Context) error {
	c, err := readCredentials(ctx, false)
	if err != nil {
		return err
	}

	e, err := newEnv(ctx, false)
	if err != nil {
		return err
	}

	defer e.Close()

	u, err := e.auth.SignIn(ctx.Context, c.email, c.password)
	if err != nil {
		return err
	}

	report.Success("signed in as %s", u.Email)

	return nil
}

// logoutAction only touches the session file, so it works while a timer
// holds the store.
func logoutAction(_ *cli.Context) error {
	paths, err := pathutil.New(appDir)
	if err != nil {
		return err
	}

	svc := auth.New(nil, paths.AuthFile, logging.Discard())
	if err := svc.SignOut(); err != nil {
		return err
	}

	report.Success("signed out")

	return nil
}

func whoamiAction(ctx *cli.Context) error {
	e, err := newEnv(ctx, false)
	if err != nil {
		return err
	}

	defer e.Close()

	u, err := e.auth.CurrentUser(ctx.Context)
	if err != nil {
		return err
	}

	pterm.Fprintln(ctx.App.Writer, u.Email)

	return nil
}
