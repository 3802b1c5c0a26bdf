package web

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/unrolled/render"
)

const maxCommandLength = 4096

func healthHandler(render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.Text(w, http.StatusOK, "ok")
	}
}

func commandHandler(run CommandRunner, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxCommandLength))
		if err != nil {
			render.Text(w, http.StatusBadRequest, fmt.Sprintf("error reading command: %v", err))
			return
		}

		argv, err := splitArgs(string(body))
		if err != nil {
			render.Text(w, http.StatusBadRequest, err.Error())
			return
		}
		if len(argv) == 0 {
			render.Text(w, http.StatusBadRequest, "empty command")
			return
		}
		// The relay only runs data commands, not another server.
		if argv[0] == "serve" {
			render.Text(w, http.StatusBadRequest, "serve is not available over the relay")
			return
		}

		var out strings.Builder
		if err := run(r.Context(), argv, &out); err != nil {
			render.Text(w, http.StatusBadRequest, err.Error())
			return
		}
		render.Text(w, http.StatusOK, out.String())
	}
}

// splitArgs tokenizes a shorthand line. Double quotes group words, so
// multi-word names survive: player show "Max Power".
func splitArgs(line string) ([]string, error) {
	var args []string
	var current strings.Builder
	inQuotes := false
	hasToken := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			hasToken = true
		case !inQuotes && (r == ' ' || r == '\t' || r == '\n' || r == '\r'):
			if hasToken {
				args = append(args, current.String())
				current.Reset()
				hasToken = false
			}
		default:
			current.WriteRune(r)
			hasToken = true
		}
	}
	if inQuotes {
		return nil, fmt.Errorf("unterminated quote in command")
	}
	if hasToken {
		args = append(args, current.String())
	}
	return args, nil
}
