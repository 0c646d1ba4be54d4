package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/garrettladley/moodly/internal/authstore"
	"github.com/garrettladley/moodly/internal/client/moodly"
	"github.com/garrettladley/moodly/internal/xslog"
)

func signupCmd() *cobra.Command {
	var username, email, password string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and log in",
		RunE: withApp(func(ctx context.Context, a *app, _ []string) error {
			pw, err := a.passwordOrPrompt(password)
			if err != nil {
				return err
			}

			client := a.anonClient()
			if _, err := client.Auth.Register(ctx, username, email, pw); err != nil {
				if moodly.IsConflict(err) {
					return errors.New("that username or email is already registered, try moodly login")
				}
				return err
			}
			return a.login(ctx, client, username, pw)
		}),
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&email, "email", "e", "", "email address")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func loginCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <username|email>",
		Short: "Log in and remember the session",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, a *app, args []string) error {
			pw, err := a.passwordOrPrompt(password)
			if err != nil {
				return err
			}
			return a.login(ctx, a.anonClient(), args[0], pw)
		}),
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: withApp(func(ctx context.Context, a *app, _ []string) error {
			if client, err := a.authedClient(); err == nil {
				// the local session goes regardless of what the server says
				if err := client.Auth.Logout(ctx); err != nil {
					a.logger.WarnContext(ctx, "server logout failed", xslog.Error(err))
				}
			}
			if err := a.store.Clear(); err != nil {
				return fmt.Errorf("failed to clear session: %w", err)
			}
			_, _ = fmt.Fprintln(a.out, "Logged out.")
			return nil
		}),
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		RunE: withApp(func(ctx context.Context, a *app, _ []string) error {
			client, err := a.authedClient()
			if err != nil {
				return err
			}
			user, err := client.Auth.Me(ctx)
			if err != nil {
				return a.checkAuth(err)
			}
			_, _ = fmt.Fprintf(a.out, "%s <%s>\n", user.Username, user.Email)
			return nil
		}),
	}
}

func (a *app) login(ctx context.Context, client *moodly.Client, login string, password string) error {
	res, err := client.Auth.Login(ctx, login, password)
	if err != nil {
		if moodly.IsUnauthorized(err) {
			return errors.New("invalid username or password")
		}
		return err
	}

	sess := authstore.Session{
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
		User: authstore.User{
			ID:       res.User.ID,
			Username: res.User.Username,
			Email:    res.User.Email,
		},
	}
	if err := a.store.Save(sess); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	a.logger.InfoContext(ctx, "logged in", xslog.UserGroup(res.User.ID, res.User.Username))
	_, _ = fmt.Fprintf(a.out, "Welcome, %s!\n", res.User.Username)
	return nil
}

// passwordOrPrompt reads a password line from stdin when the flag is empty.
func (a *app) passwordOrPrompt(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	_, _ = fmt.Fprint(a.out, "Password: ")
	line, err := bufio.NewReader(a.in).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	pw := strings.TrimRight(line, "\r\n")
	if pw == "" {
		return "", errors.New("password is required")
	}
	return pw, nil
}
