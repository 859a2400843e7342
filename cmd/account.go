package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/inovacc/nutrilog/internal/auth"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login [user]",
	Short: "Log in and store the session",
	Long: `Log in to the nutrition API and store the session locally.

The password is read without echo. When stdin is not a terminal it is read
from the first line of stdin, so scripts can pipe it in.

Examples:
  nutrilog login ana
  echo "$PASSWORD" | nutrilog login ana`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register [user]",
	Short: "Create an account",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the account behind the current token",
	Args:  cobra.NoArgs,
	RunE:  runWhoAmI,
}

func init() {
	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
}

func credentials(args []string) (string, string, error) {
	user := ""
	if len(args) > 0 {
		user = args[0]
	}

	if user == "" {
		u, err := promptLine(stdin, os.Stderr, "User: ")
		if err != nil {
			return "", "", fmt.Errorf("failed to read user: %w", err)
		}

		user = u
	}

	password, err := promptForPassword("Password: ")
	if err != nil {
		return "", "", fmt.Errorf("failed to read password: %w", err)
	}

	return user, password, nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	rt, err := getRuntime(cmd, false)
	if err != nil {
		return err
	}

	defer func() { _ = rt.Close() }()

	user, password, err := credentials(args)
	if err != nil {
		return err
	}

	session, err := rt.svc.Login(cmd.Context(), user, password)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if flagJSON {
		session.Token = ""
		session.SealedToken = nil

		return printJSON(out, session)
	}

	_, _ = fmt.Fprintf(out, "Logged in as %s\n", session.User.Name)
	_, _ = fmt.Fprintf(out, "Server: %s\n", rt.cfg.APIURL)
	_, _ = fmt.Fprintf(out, "Storage: %s\n", formatTokenStorage(session.TokenStorage))

	if !session.ExpiresAt.IsZero() {
		_, _ = fmt.Fprintf(out, "Expires: %s\n", session.ExpiresAt.Local().Format(time.DateTime))
	}

	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	rt, err := getRuntime(cmd, false)
	if err != nil {
		return err
	}

	defer func() { _ = rt.Close() }()

	user, password, err := credentials(args)
	if err != nil {
		return err
	}

	created, err := rt.svc.Register(cmd.Context(), user, password)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(cmd.OutOrStdout(), created)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Account %s created.\nLog in with: nutrilog login %s\n", created.Name, created.Name)

	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	rt, err := getRuntime(cmd, false)
	if err != nil {
		return err
	}

	defer func() { _ = rt.Close() }()

	if err := rt.svc.Logout(); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")

	return nil
}

func runWhoAmI(cmd *cobra.Command, _ []string) error {
	rt, err := getRuntime(cmd, true)
	if err != nil {
		return err
	}

	defer func() { _ = rt.Close() }()

	user, err := rt.svc.WhoAmI(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if flagJSON {
		return printJSON(out, user)
	}

	items := []infoItem{
		{"User", user.Name},
		{"ID", user.ID},
		{"Server", rt.cfg.APIURL},
		{"Token from", rt.token.Name},
	}

	if !user.CreatedAt.IsZero() {
		items = append(items, infoItem{"Member since", user.CreatedAt.Local().Format(time.DateOnly)})
	}

	if claims := auth.ParseClaims(rt.token.Token); !claims.ExpiresAt.IsZero() {
		items = append(items, infoItem{"Token expires", claims.ExpiresAt.Local().Format(time.DateTime)})
	}

	printInfoBox(out, "Account", items)

	return nil
}
