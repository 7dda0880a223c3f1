package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"regexp"

	picker "github.com/omnirec/picker"
	"github.com/omnirec/picker/ipc"
)

// SelectionSource provides the current capture selection for query_selection
// requests.
type SelectionSource interface {
	Selection() *picker.Response
}

// StaticSelection is a SelectionSource that always answers with the same
// selection, configured on the command line.
type StaticSelection struct {
	Response *picker.Response
	Tokens   *TokenStore
}

// Selection returns the configured selection. has_approval_token reflects
// whether any token is currently stored, so a picker run that chose
// always-allow auto-approves on the next invocation.
func (s *StaticSelection) Selection() *picker.Response {
	resp := *s.Response
	if resp.Type == picker.TypeSelection {
		resp.HasApprovalToken = s.Tokens.Count() > 0
	}
	return &resp
}

// Server listens on a Unix domain socket and speaks the length-prefixed
// picker protocol. Connections from other users are rejected.
type Server struct {
	listener net.Listener
	sockPath string
	source   SelectionSource
	tokens   *TokenStore
}

// NewServer creates a server bound to the given socket path, creating the
// parent directory and removing a stale socket file first.
func NewServer(sockPath string, source SelectionSource, tokens *TokenStore) (*Server, error) {
	if err := os.MkdirAll(filepath.Dir(sockPath), 0o700); err != nil {
		return nil, err
	}
	if err := os.Remove(sockPath); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	listener, err := net.Listen("unix", sockPath)
	if err != nil {
		return nil, err
	}

	return &Server{
		listener: listener,
		sockPath: sockPath,
		source:   source,
		tokens:   tokens,
	}, nil
}

// Serve accepts connections and handles requests.
func (s *Server) Serve() error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return err
		}
		go s.handleConn(conn)
	}
}

// Close shuts down the server and removes the socket file.
func (s *Server) Close() {
	s.listener.Close()
	s.tokens.Close()
	os.Remove(s.sockPath)
}

var tokenPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// handleConn serves one client. A picker uses a single connection for its
// whole run, so requests are handled in a loop until the client hangs up.
func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	if uid, err := peerUID(conn); err != nil {
		slog.Warn("peer credential check failed", "error", err)
	} else if uid != uint32(os.Getuid()) {
		slog.Warn("rejecting connection from other user", "peer_uid", uid)
		return
	}

	br := bufio.NewReader(conn)
	for {
		body, err := ipc.ReadBody(br)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				slog.Warn("read request failed", "error", err)
			}
			return
		}

		var req picker.Request
		if err := json.Unmarshal(body, &req); err != nil {
			s.respond(conn, &picker.Response{
				Type:    picker.TypeError,
				Message: "Failed to parse request: " + err.Error(),
			})
			return
		}

		slog.Debug("request", "type", req.Type)
		if !s.respond(conn, s.handleRequest(&req)) {
			return
		}
	}
}

func (s *Server) handleRequest(req *picker.Request) *picker.Response {
	switch req.Type {
	case picker.TypeQuerySelection:
		return s.source.Selection()

	case picker.TypeStoreToken:
		if !tokenPattern.MatchString(req.Token) {
			return &picker.Response{Type: picker.TypeError, Message: "Invalid token format"}
		}
		s.tokens.Store(req.Token)
		slog.Info("token stored", "count", s.tokens.Count())
		return &picker.Response{Type: picker.TypeTokenStored}

	case picker.TypeValidateToken:
		if s.tokens.Valid(req.Token) {
			return &picker.Response{Type: picker.TypeTokenValid}
		}
		return &picker.Response{Type: picker.TypeTokenInvalid}

	default:
		return &picker.Response{Type: picker.TypeError, Message: "Unknown request type: " + req.Type}
	}
}

func (s *Server) respond(conn net.Conn, resp *picker.Response) bool {
	frame, err := ipc.EncodeResponseFrame(resp)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
		return false
	}
	if _, err := conn.Write(frame); err != nil {
		slog.Warn("write response failed", "error", err)
		return false
	}
	return true
}
