package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/unrolled/render"
)

func postCommand(t *testing.T, run CommandRunner, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/command", strings.NewReader(body))
	resp := httptest.NewRecorder()
	commandHandler(run, render.New())(resp, req)
	return resp
}

func TestCommandHandler(t *testing.T) {
	var gotArgs []string
	run := func(ctx context.Context, argv []string, out io.Writer) error {
		gotArgs = argv
		fmt.Fprintln(out, "rendered block")
		return nil
	}

	resp := postCommand(t, run, "player show 42")
	if resp.Code != http.StatusOK {
		t.Fatalf("status incorrect, wanted: 200, got: %d", resp.Code)
	}
	if want := []string{"player", "show", "42"}; !reflect.DeepEqual(gotArgs, want) {
		t.Errorf("argv incorrect, wanted: %v, got: %v", want, gotArgs)
	}
	if !strings.Contains(resp.Body.String(), "rendered block") {
		t.Errorf("body incorrect: %q", resp.Body.String())
	}
}

func TestCommandHandlerUsageError(t *testing.T) {
	run := func(ctx context.Context, argv []string, out io.Writer) error {
		return fmt.Errorf("expected a player reference")
	}

	resp := postCommand(t, run, "player show")
	if resp.Code != http.StatusBadRequest {
		t.Errorf("status incorrect, wanted: 400, got: %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "player reference") {
		t.Errorf("body incorrect: %q", resp.Body.String())
	}
}

func TestCommandHandlerRejectsEmptyAndServe(t *testing.T) {
	run := func(ctx context.Context, argv []string, out io.Writer) error {
		t.Error("runner must not be called")
		return nil
	}

	if resp := postCommand(t, run, "   "); resp.Code != http.StatusBadRequest {
		t.Errorf("empty command status incorrect, got: %d", resp.Code)
	}
	if resp := postCommand(t, run, "serve"); resp.Code != http.StatusBadRequest {
		t.Errorf("serve relay status incorrect, got: %d", resp.Code)
	}
}

func TestSplitArgs(t *testing.T) {
	tests := map[string]struct {
		input   string
		want    []string
		wantErr bool
	}{
		"plain":          {input: "player list", want: []string{"player", "list"}},
		"quoted name":    {input: `player show "Max Power"`, want: []string{"player", "show", "Max Power"}},
		"empty quotes":   {input: `player show ""`, want: []string{"player", "show", ""}},
		"extra spaces":   {input: "  stats   avg  ", want: []string{"stats", "avg"}},
		"newline body":   {input: "player list\n", want: []string{"player", "list"}},
		"unterminated":   {input: `player show "Max`, wantErr: true},
		"empty line":     {input: "", want: nil},
		"tab separators": {input: "season\tadd\t53", want: []string{"season", "add", "53"}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := splitArgs(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Errorf("expected an error for %q", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("args incorrect, wanted: %v, got: %v", tc.want, got)
			}
		})
	}
}
