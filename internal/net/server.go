// Package net runs the TCP front end of the barrack server: one goroutine
// per client connection, reading frames and feeding them to the dispatcher.
package net

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"time"

	"github.com/Micenas/R1EMU/internal/barrack"
	"github.com/Micenas/R1EMU/internal/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionBackend is the slice of the session store the transport needs:
// persisting a session after an UpdateSession outcome and clearing the
// socket-key record when the connection dies.
type SessionBackend interface {
	SaveSession(ctx context.Context, sess *barrack.Session) error
	DeleteSession(ctx context.Context, key string) error
}

// Server accepts TCP connections and runs one worker per client.
type Server struct {
	listener   net.Listener
	dispatcher *barrack.Dispatcher
	sessions   SessionBackend
	routerID   uint16

	readTimeout  time.Duration
	writeTimeout time.Duration

	wg      sync.WaitGroup
	closeCh chan struct{}
	log     *zap.Logger
}

func NewServer(cfg config.NetworkConfig, routerID uint16, d *barrack.Dispatcher, sessions SessionBackend, log *zap.Logger) (*Server, error) {
	ln, err := net.Listen("tcp", cfg.BindAddress)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener:     ln,
		dispatcher:   d,
		sessions:     sessions,
		routerID:     routerID,
		readTimeout:  cfg.ReadTimeout.Duration,
		writeTimeout: cfg.WriteTimeout.Duration,
		closeCh:      make(chan struct{}),
		log:          log,
	}, nil
}

// Serve accepts connections until Shutdown closes the listener.
func (s *Server) Serve() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.closeCh:
				return
			default:
			}
			s.log.Error("accept failed", zap.Error(err))
			continue
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConn(conn)
		}()
	}
}

// Shutdown stops accepting and waits for in-flight workers to drain.
func (s *Server) Shutdown(ctx context.Context) error {
	close(s.closeCh)
	s.listener.Close()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Addr returns the listener's address.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// handleConn owns one client connection for its lifetime. Each connection
// gets a fresh session keyed by an opaque UUID; the session only reaches the
// distributed store once a handler reports UpdateSession.
func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	sessionKey := uuid.NewString()
	sess := barrack.NewSession(sessionKey, s.routerID)

	log := s.log.With(
		zap.String("sessionKey", sessionKey),
		zap.String("remote", conn.RemoteAddr().String()),
	)
	log.Info("client connected")

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.sessions.DeleteSession(ctx, sessionKey); err != nil {
			log.Warn("session cleanup failed", zap.Error(err))
		}
		log.Info("client disconnected")
	}()

	for {
		select {
		case <-s.closeCh:
			return
		default:
		}

		if s.readTimeout > 0 {
			conn.SetReadDeadline(time.Now().Add(s.readTimeout))
		}
		t, payload, err := ReadFrame(conn)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Debug("read failed", zap.Error(err))
			}
			return
		}

		ctx := context.Background()
		reply := &barrack.Reply{}
		state := s.dispatcher.Handle(ctx, sess, t, payload, reply)

		switch state {
		case barrack.StateError:
			log.Warn("handler rejected packet, disconnecting",
				zap.String("type", t.String()),
			)
			return
		case barrack.StateUpdateSession:
			if err := s.sessions.SaveSession(ctx, sess); err != nil {
				log.Error("session save failed", zap.Error(err))
				return
			}
		}

		for _, frame := range reply.Frames() {
			if s.writeTimeout > 0 {
				conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
			}
			if err := WriteFrame(conn, frame); err != nil {
				log.Debug("write failed", zap.Error(err))
				return
			}
		}
	}
}
