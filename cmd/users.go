package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/telaflix/telaflix/internal/formatter"
	"github.com/telaflix/telaflix/internal/shared"
	"github.com/urfave/cli/v3"
)

// UsersList shows every subscriber recorded in the local ledger.
func (r *Runner) UsersList(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if r.store == nil {
		return fmt.Errorf("%w: local store not initialized, run 'telaflix setup' first", shared.ErrServiceUnavailable)
	}

	users := r.store.ListUsers()

	if useJSON {
		return r.writeJSON(users, pretty)
	}

	if len(users) == 0 {
		return r.writePlain("No subscribers registered yet\n")
	}

	r.writePlain("Found %d subscribers:\n\n", len(users))
	totalXP := 0
	for i, user := range users {
		r.writePlain("%d. %s\n", i+1, user.Name)
		r.writePlain("   Email: %s\n", user.Email)
		r.writePlain("   XP: %d\n", user.XP)
		r.writePlain("   Last login: %s\n", user.LastLogin.Format("2006-01-02 15:04"))
		totalXP += user.XP
	}
	r.writePlain("\nTotal XP across subscribers: %d\n", totalXP)
	return nil
}

// UsersExport writes the ledger to a JSON backup or a CSV report.
func (r *Runner) UsersExport(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String("format")
	output := cmd.String("output")

	if r.store == nil {
		return fmt.Errorf("%w: local store not initialized, run 'telaflix setup' first", shared.ErrServiceUnavailable)
	}

	users := r.store.ListUsers()
	if len(users) == 0 {
		return r.writePlain("✗ Nothing to export, the ledger is empty\n")
	}

	switch format {
	case "json":
		path, err := formatter.WriteUsersBackup(users, output)
		if err != nil {
			return fmt.Errorf("failed to export ledger: %w", err)
		}
		r.writePlain("✓ Ledger exported to %s\n", path)
		r.writePlain("  Subscribers: %d\n", len(users))
		return nil

	case "csv":
		data, err := formatter.UsersToCSV(users)
		if err != nil {
			return fmt.Errorf("failed to render CSV: %w", err)
		}
		if output == "" {
			output = "telaflix"
		}
		path := strings.TrimSuffix(output, ".csv") + "_users.csv"
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		r.writePlain("✓ Ledger exported to %s\n", path)
		r.writePlain("  Subscribers: %d\n", len(users))
		return nil
	}

	return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidInput, format)
}

// UsersNotify sends a product update to every subscriber in the ledger.
// Per-address delivery failures are logged and do not abort the run.
func (r *Runner) UsersNotify(ctx context.Context, cmd *cli.Command) error {
	title := cmd.String("title")
	message := cmd.String("message")

	if r.store == nil {
		return fmt.Errorf("%w: local store not initialized, run 'telaflix setup' first", shared.ErrServiceUnavailable)
	}
	if r.mailer == nil {
		return fmt.Errorf("%w: EmailJS credentials must be set in config.toml", shared.ErrMissingCredentials)
	}

	users := r.store.ListUsers()
	if len(users) == 0 {
		return r.writePlain("✗ No subscribers to notify\n")
	}

	sent := 0
	for _, user := range users {
		if err := r.mailer.SendUpdate(ctx, user.Email, title, message); err != nil {
			r.logger.Warnf("delivery to %s failed: %v", user.Email, err)
			continue
		}
		sent++
	}

	if sent == 0 {
		return fmt.Errorf("%w: no update could be delivered", shared.ErrEmailSend)
	}

	r.writePlain("✓ Update sent to %d of %d subscribers\n", sent, len(users))
	return nil
}
