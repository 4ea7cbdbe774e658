package main

import (
	"context"
	"fmt"

	"github.com/achasveachas/yt-tutorial-dashboard/internal/auth"
	"github.com/achasveachas/yt-tutorial-dashboard/internal/repositories"
	"github.com/achasveachas/yt-tutorial-dashboard/internal/ui"
	"github.com/urfave/cli/v3"
)

// CreateUser provisions an API account.
func (r *Runner) CreateUser(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	user, err := repositories.NewUserRepository(db, r.userOpts...).
		Create(ctx, cmd.String("username"), cmd.String("password"))
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.Info("created user", "id", user.ID, "username", user.Username)
	r.writePlain("%s\n", ui.Success(fmt.Sprintf("Created user %s (id %d)", user.Username, user.ID)))
	return nil
}

// ListUsers prints every account.
func (r *Runner) ListUsers(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	users, err := repositories.NewUserRepository(db).List(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(users, true)
	}

	if len(users) == 0 {
		return r.writePlain("%s\n", ui.Warning("No users yet. Create one with 'ytdash users create'."))
	}
	return r.writePlain("%s\n", ui.UserTable(users))
}

// IssueToken checks a user's credentials and prints a token for the Authorization header.
func (r *Runner) IssueToken(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	user, err := repositories.NewUserRepository(db).
		Authenticate(ctx, cmd.String("username"), cmd.String("password"))
	if err != nil {
		return err
	}

	tokens, err := auth.NewTokenService(config.Auth.Secret, config.Auth.Issuer, config.Auth.TokenTTL)
	if err != nil {
		return err
	}

	token, err := tokens.IssueToken(user.ID)
	if err != nil {
		return err
	}

	r.logger.Debug("issued token", "user_id", user.ID, "ttl", config.Auth.TokenTTL)

	if cmd.Bool("raw") {
		return r.writePlain("%s\n", token)
	}
	return r.writePlain("%s%s\n", auth.Scheme, token)
}
