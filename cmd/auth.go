package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/telaflix/telaflix/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthRequestCode emails a one-time verification code to the given address.
func (r *Runner) AuthRequestCode(ctx context.Context, cmd *cli.Command) error {
	email := cmd.StringArg("email")
	if email == "" {
		return fmt.Errorf("%w: email address", shared.ErrMissingArgument)
	}
	if r.auth == nil {
		return fmt.Errorf("%w: local store not initialized, run 'telaflix setup' first", shared.ErrServiceUnavailable)
	}
	if r.mailer == nil {
		return fmt.Errorf("%w: EmailJS credentials must be set in config.toml", shared.ErrMissingCredentials)
	}

	r.logger.Infof("requesting verification code for %v", email)

	if err := r.auth.RequestCode(ctx, email); err != nil {
		return err
	}

	r.writePlain("✓ Verification code sent to %s\n", email)
	r.writePlain("Complete the login with: telaflix auth login %s --code <code>\n", email)
	return nil
}

// AuthLogin verifies a code and establishes a session.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	email := cmd.StringArg("email")
	code := cmd.String("code")
	name := cmd.String("name")

	if email == "" {
		return fmt.Errorf("%w: email address", shared.ErrMissingArgument)
	}
	if r.auth == nil {
		return fmt.Errorf("%w: local store not initialized, run 'telaflix setup' first", shared.ErrServiceUnavailable)
	}

	user, err := r.auth.Login(ctx, email, name, code)
	if err != nil {
		return err
	}

	r.writePlain("✓ Logged in as %s\n", user.Name)
	r.writePlain("  Email: %s\n", user.Email)
	r.writePlain("  XP: %d\n", user.XP)
	return nil
}

// AuthLogout clears the active session. The ledger entry survives.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if r.auth == nil {
		return fmt.Errorf("%w: local store not initialized, run 'telaflix setup' first", shared.ErrServiceUnavailable)
	}

	if err := r.auth.Logout(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	return r.writePlain("✓ Logged out\n")
}

// AuthWhoami shows the active session record.
func (r *Runner) AuthWhoami(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if r.auth == nil {
		return fmt.Errorf("%w: local store not initialized, run 'telaflix setup' first", shared.ErrServiceUnavailable)
	}

	user, err := r.auth.Current()
	if errors.Is(err, shared.ErrNotAuthenticated) {
		return r.writePlain("✗ Not logged in\n")
	}
	if err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(user, pretty)
	}

	r.writePlain("Name: %s\n", user.Name)
	r.writePlain("Email: %s\n", user.Email)
	r.writePlain("XP: %d\n", user.XP)
	r.writePlain("Member since: %s\n", user.CreatedAt.Format("2006-01-02"))
	return nil
}
