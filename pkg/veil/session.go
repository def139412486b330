package veil

import (
	"context"
	"fmt"
	"sync/atomic"

	"veil-client/pkg/types"
)

// AuthState is the client's position in the session lifecycle.
type AuthState int32

const (
	Unauthenticated AuthState = iota
	Authenticating
	Authenticated
)

func (s AuthState) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("authstate(%d)", int32(s))
	}
}

// SessionStore holds at most one active session in an atomically swappable
// cell. Concurrent handshakes are a defined race: each stores its own
// session and the last write wins; subsequent calls use whichever token
// landed last. Redundant re-authentications are idempotent server-side.
type SessionStore struct {
	session atomic.Pointer[types.Session]
	state   atomic.Int32
}

// NewSessionStore returns an empty store in the Unauthenticated state.
func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Token returns the active bearer token, or "" when no session is held.
func (s *SessionStore) Token() string {
	if sess := s.session.Load(); sess != nil {
		return sess.Token
	}
	return ""
}

// Session returns the active session, or nil.
func (s *SessionStore) Session() *types.Session {
	return s.session.Load()
}

// State returns the current lifecycle state.
func (s *SessionStore) State() AuthState {
	return AuthState(s.state.Load())
}

// Replace installs a new session, discarding any prior one.
func (s *SessionStore) Replace(sess *types.Session) {
	s.session.Store(sess)
	s.state.Store(int32(Authenticated))
}

// beginAuth marks a handshake in flight. Any previously held token stays
// usable until Replace lands.
func (s *SessionStore) beginAuth() {
	s.state.Store(int32(Authenticating))
}

// failAuth restores the state implied by whatever session is still held.
func (s *SessionStore) failAuth() {
	if s.session.Load() != nil {
		s.state.Store(int32(Authenticated))
	} else {
		s.state.Store(int32(Unauthenticated))
	}
}

// challenge is the payload of POST /session_challenges.
type challenge struct {
	Uid string `json:"uid"`
}

// sessionRequest is the body of POST /sessions. The server verifies that
// signature recovers the wallet address over the challenge uid.
type sessionRequest struct {
	ChallengeUid string `json:"challengeUid"`
	Message      string `json:"message"`
	Signature    string `json:"signature"`
}

// Authenticate runs the challenge/signature handshake end to end and
// replaces the stored session with the fresh one. Fails with
// ErrNoCredentials when the client was built without a signer; that error
// is fatal for any authenticated call and is never retried.
func (c *Client) Authenticate(ctx context.Context) error {
	if c.signer == nil {
		return ErrNoCredentials
	}

	c.sessions.beginAuth()

	var ch challenge
	if err := c.gw.post(ctx, apiPrefix+"/session_challenges", struct{}{}, &ch); err != nil {
		c.sessions.failAuth()
		return fmt.Errorf("create session challenge: %w", err)
	}

	sig, err := c.signer.SignMessage([]byte(ch.Uid))
	if err != nil {
		c.sessions.failAuth()
		return fmt.Errorf("sign challenge: %w", err)
	}

	var sess types.Session
	req := sessionRequest{ChallengeUid: ch.Uid, Message: ch.Uid, Signature: sig}
	if err := c.gw.post(ctx, apiPrefix+"/sessions", req, &sess); err != nil {
		c.sessions.failAuth()
		return fmt.Errorf("create session: %w", err)
	}

	c.sessions.Replace(&sess)
	c.logger.Debug("session established", "address", c.signer.Address().Hex())
	return nil
}
