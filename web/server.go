// Package web exposes the chat relay endpoint: a shorthand command line
// posted to /command runs through the same command tree as the CLI and
// comes back as a rendered text block.
package web

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/unrolled/render"
)

// CommandRunner executes one shorthand command line, writing the
// rendered result to out. A non-nil error marks a usage failure.
type CommandRunner func(ctx context.Context, argv []string, out io.Writer) error

type Server struct {
	server *http.Server
}

func NewServer(port int, run CommandRunner) (*Server, error) {
	if run == nil {
		return nil, fmt.Errorf("command runner must not be nil")
	}
	render := render.New()
	router := getRouter(run, render)

	s := &Server{
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		},
	}
	return s, nil
}

func (s *Server) ListenAndServe(shutdown chan bool, wg *sync.WaitGroup) {
	go func() {
		defer wg.Done()

		// Wait for the shutdown signal and safely close the server.
		<-shutdown

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.server.Shutdown(ctx); err != nil {
			log.Fatalf("fatal error shutting down server: %v", err)
		}
	}()

	log.Printf("command relay is listening on %s", s.server.Addr)
	err := s.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatalf("fatal error with server: %v", err)
	}
}
