package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/matsen/dendro/internal/config"
	"github.com/matsen/dendro/internal/dendro"
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg, Kind: kindForCode(code)})
	}
	finish()
	os.Exit(code)
}

// exitForError exits with the code matching err's category.
func exitForError(context string, err error) {
	exitWithError(exitCode(err), "%s: %v", context, err)
}

// exitCode maps an error to an exit code.
func exitCode(err error) int {
	var cfgErr *config.ValidationError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &cfgErr):
		return ExitConfigError
	case dendro.IsDataError(err):
		return ExitDataError
	default:
		return ExitError
	}
}

func kindForCode(code int) string {
	switch code {
	case ExitConfigError:
		return "config"
	case ExitDataError:
		return "data"
	default:
		return ""
	}
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// StatusResponse is a generic response for commands that write files.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
}
