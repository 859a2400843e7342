package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/inovacc/nutrilog/internal/auth"
	"github.com/inovacc/nutrilog/internal/core"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the API and show the login state",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

type statusReport struct {
	APIURL      string    `json:"api_url"`
	Healthy     bool      `json:"healthy"`
	Message     string    `json:"message,omitempty"`
	Error       string    `json:"error,omitempty"`
	User        string    `json:"user,omitempty"`
	TokenSource string    `json:"token_source,omitempty"`
	Storage     string    `json:"token_storage,omitempty"`
	ExpiresAt   time.Time `json:"expires_at,omitzero"`
	Expired     bool      `json:"expired,omitempty"`
}

func runStatus(cmd *cobra.Command, _ []string) error {
	rt, err := getRuntime(cmd, false)
	if err != nil {
		return err
	}

	defer func() { _ = rt.Close() }()

	report := statusReport{APIURL: rt.cfg.APIURL}

	msg, healthErr := rt.svc.Health(cmd.Context())
	if healthErr != nil {
		report.Error = healthErr.Error()
	} else {
		report.Healthy = true
		report.Message = msg
	}

	sess, err := rt.svc.CurrentSession()
	switch {
	case err == nil:
		report.User = sess.User.Name
		report.Storage = formatTokenStorage(sess.TokenStorage)
	case errors.Is(err, core.ErrNotLoggedIn):
	default:
		rt.logger.Warn("failed to read session", "error", err)
	}

	if rt.token != nil {
		report.TokenSource = rt.token.Name

		claims := auth.ParseClaims(rt.token.Token)
		report.ExpiresAt = claims.ExpiresAt

		if _, err := auth.Inspect(rt.token.Token, time.Now()); errors.Is(err, auth.ErrTokenExpired) {
			report.Expired = true
		}
	}

	out := cmd.OutOrStdout()

	if flagJSON {
		if err := printJSON(out, report); err != nil {
			return err
		}

		return healthErr
	}

	health := "ok"
	if report.Healthy {
		if report.Message != "" {
			health = "ok (" + report.Message + ")"
		}
	} else {
		health = "unreachable"
	}

	items := []infoItem{
		{"Server", report.APIURL},
		{"Health", health},
	}

	switch {
	case report.User != "":
		items = append(items, infoItem{"Logged in as", report.User}, infoItem{"Storage", report.Storage})
	case report.TokenSource == "":
		items = append(items, infoItem{"Logged in as", "nobody"})
	}

	if report.TokenSource != "" {
		items = append(items, infoItem{"Token from", report.TokenSource})
	}

	if !report.ExpiresAt.IsZero() {
		expires := report.ExpiresAt.Local().Format(time.DateTime)
		if report.Expired {
			expires += " (expired)"
		}

		items = append(items, infoItem{"Token expires", expires})
	}

	printInfoBox(out, "Status", items)

	if healthErr != nil {
		return fmt.Errorf("API is unreachable: %w", healthErr)
	}

	return nil
}
