package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/inovacc/nutrilog/internal/model"
	"golang.org/x/term"
)

// stdin is shared so consecutive prompts do not lose buffered input
var stdin = bufio.NewReader(os.Stdin)

// formatTokenStorage returns a human-readable string for the token storage type
func formatTokenStorage(ts model.TokenStorage) string {
	switch ts {
	case model.TokenStorageEncrypted:
		return "encrypted (AES-GCM)"
	case model.TokenStoragePlain:
		return "plain text"
	default:
		return string(ts)
	}
}

// promptConfirm asks the user for confirmation and returns true if they confirm
// prompt should include the question (e.g., "Delete this food? [y/N]: ")
func promptConfirm(in *bufio.Reader, out io.Writer, prompt string) bool {
	_, _ = fmt.Fprint(out, prompt)

	response, _ := in.ReadString('\n')
	response = strings.TrimSpace(response)

	return response == "y" || response == "Y"
}

// promptLine reads one line from in after printing prompt.
func promptLine(in *bufio.Reader, out io.Writer, prompt string) (string, error) {
	_, _ = fmt.Fprint(out, prompt)

	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}

	return strings.TrimSpace(line), nil
}

// promptForPassword reads a password without echo when stdin is a terminal,
// or one line of stdin otherwise.
func promptForPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())

	if !term.IsTerminal(fd) {
		return promptLine(stdin, os.Stderr, "")
	}

	_, _ = fmt.Fprint(os.Stderr, prompt)

	bytePassword, err := term.ReadPassword(fd)

	_, _ = fmt.Fprintln(os.Stderr)

	if err != nil {
		return "", err
	}

	return string(bytePassword), nil
}

// expandPath expands ~ to the user's home directory and returns an absolute path
func expandPath(path string) (string, error) {
	if len(path) == 0 {
		return "", fmt.Errorf("path is empty")
	}

	// Expand ~ to home directory
	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}

		path = filepath.Join(home, path[1:])
	}

	// Make path absolute
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	return absPath, nil
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

// printEmptyResult prints a "no results" message with a create hint
// resourceType: "foods", "meals", etc.
// createCmd: the command to create the resource
func printEmptyResult(w io.Writer, resourceType, createCmd string) {
	_, _ = fmt.Fprintf(w, "No %s yet.\n", resourceType)
	_, _ = fmt.Fprintf(w, "Add one with: %s\n", createCmd)
}

// centerString centers a string in a field of given width
func centerString(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}

	padding := (width - n) / 2

	return fmt.Sprintf("%*s%s%*s", padding, "", s, width-n-padding, "")
}

// truncateString truncates a string to the specified length with ellipsis
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}

	if maxLen <= 3 {
		return string(r[:maxLen])
	}

	return string(r[:maxLen-3]) + "..."
}

// boxWidth is the standard width for info boxes
const boxWidth = 64

// printBoxHeader prints the top border of an info box with a title
func printBoxHeader(w io.Writer, title string) {
	_, _ = fmt.Fprintln(w, "╔══════════════════════════════════════════════════════════════╗")
	_, _ = fmt.Fprintf(w, "║%s║\n", centerString(title, boxWidth-2))
	_, _ = fmt.Fprintln(w, "╠══════════════════════════════════════════════════════════════╣")
}

// printBoxLine prints a line inside an info box with label and value
func printBoxLine(w io.Writer, label, value string) {
	content := truncateString(fmt.Sprintf("  %s: %s", label, value), boxWidth-2)
	padding := boxWidth - 2 - len([]rune(content))

	_, _ = fmt.Fprintf(w, "║%s%*s║\n", content, padding, "")
}

// printBoxFooter prints the bottom border of an info box
func printBoxFooter(w io.Writer) {
	_, _ = fmt.Fprintln(w, "╚══════════════════════════════════════════════════════════════╝")
}

// infoItem is one label/value line of an info box.
type infoItem struct {
	label string
	value string
}

// printInfoBox prints a complete info box with title and key-value pairs
func printInfoBox(w io.Writer, title string, items []infoItem) {
	printBoxHeader(w, title)

	for _, item := range items {
		printBoxLine(w, item.label, item.value)
	}

	printBoxFooter(w)
}
