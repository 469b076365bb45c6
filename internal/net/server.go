package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
)

// Server hosts rounds for TCP clients, one round per connection. Messages
// are newline-delimited JSON.
type Server struct {
	Addr  string // host:port, ":0" picks a free port
	Lobby *Lobby

	mu sync.Mutex
	ln net.Listener
}

// Listen binds the listener so Address is known before Serve runs.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()
	return nil
}

// Address returns the bound address, or "" before Listen.
func (s *Server) Address() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// Run listens (if needed) and serves connections until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	if s.Address() == "" {
		if err := s.Listen(); err != nil {
			return err
		}
	}
	s.mu.Lock()
	ln := s.ln
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	slog.Info("round server listening", "addr", ln.Addr().String())
	var wg sync.WaitGroup
	defer wg.Wait()
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			done := make(chan struct{})
			defer close(done)
			defer conn.Close()
			go func() {
				select {
				case <-ctx.Done():
					conn.Close()
				case <-done:
				}
			}()
			if err := s.serveConn(conn); err != nil {
				slog.Warn("connection closed", "remote", conn.RemoteAddr().String(), "error", err)
			}
		}()
	}
}

// serveConn expects a "start" message, then answers every message until the
// round ends or the client disconnects.
func (s *Server) serveConn(conn net.Conn) error {
	dec := json.NewDecoder(conn)
	enc := json.NewEncoder(conn)

	var start ClientMessage
	if err := dec.Decode(&start); err != nil {
		return fmt.Errorf("read start message: %w", err)
	}
	sess, err := s.Lobby.StartRound(start)
	if err != nil {
		_ = enc.Encode(ServerMessage{Type: MsgError, Error: err.Error()})
		return fmt.Errorf("start round: %w", err)
	}
	slog.Info("round started", "remote", conn.RemoteAddr().String(), "round", sess.ID(), "enemy", sess.round.Enemy().Name)

	reply := sess.Snapshot()
	for {
		if err := enc.Encode(reply); err != nil {
			return fmt.Errorf("send: %w", err)
		}
		if reply.Type == MsgGameOver {
			slog.Info("round over", "round", sess.ID(), "won", reply.Won, "reason", reply.Result)
			return nil
		}
		var msg ClientMessage
		if err := dec.Decode(&msg); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("read message: %w", err)
		}
		reply = sess.Handle(msg)
	}
}
