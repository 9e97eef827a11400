package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Start runs the HTTP server and the delivery subscriber, blocking until
// an interrupt signal arrives.
func (s *Server) Start() {
	subCtx, cancelSub := context.WithCancel(context.Background())
	defer cancelSub()

	if err := s.bridge.Start(subCtx, s.bus); err != nil {
		s.E.Logger.Fatalf("starting delivery subscriber: %v", err)
	}

	go func() {
		if err := s.E.Start(s.Cfg.Addr); err != nil && err != http.ErrServerClosed {
			s.E.Logger.Fatalf("shutting down the server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server with a timeout.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	cancelSub()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.bus.Close()
	s.DB.Close(ctx)
	if err := s.E.Shutdown(ctx); err != nil {
		s.E.Logger.Fatal(err)
	}
}
