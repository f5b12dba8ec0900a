// Package session owns the authentication lifecycle. It is the only place
// that writes the persisted token, and the only source of truth for who is
// logged in.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/spesecasa/cassa/internal/api"
	"github.com/spesecasa/cassa/internal/config"
	"github.com/spesecasa/cassa/internal/logx"
)

// State is the authentication phase of the session.
type State int

const (
	// Unauthenticated means there is no usable token.
	Unauthenticated State = iota
	// Authenticating means a login or token check is in flight.
	Authenticating
	// Authenticated means the server accepted the token and the user
	// profile is loaded.
	Authenticated
)

func (s State) String() string {
	switch s {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Store tracks the session state machine. All transitions go through it so
// a late response from a superseded login attempt can never overwrite a
// newer state.
type Store struct {
	mu     sync.Mutex
	state  State
	user   *api.User
	client *api.Client

	// gen increments on every transition that invalidates in-flight
	// work (login start, logout). A completing operation only commits
	// if the generation it started under is still current.
	gen uint64
}

// New wraps a client in a session store. The store starts Unauthenticated
// even when a token is on disk; Resume promotes it once the server accepts
// the token.
func New(client *api.Client) *Store {
	return &Store{client: client}
}

// State returns the current phase.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// User returns the loaded profile, or nil outside Authenticated.
func (s *Store) User() *api.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// IsSuperuser reports whether the authenticated user has admin rights.
// False while not authenticated.
func (s *Store) IsSuperuser() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil && s.user.IsSuperuser
}

// Client returns the underlying API client.
func (s *Store) Client() *api.Client {
	return s.client
}

func (s *Store) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.state = Authenticating
	s.user = nil
	return s.gen
}

// commit applies the outcome of a login or resume, unless a newer
// transition started in the meantime.
func (s *Store) commit(gen uint64, user *api.User) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	if user == nil {
		s.state = Unauthenticated
		s.user = nil
	} else {
		s.state = Authenticated
		s.user = user
	}
	return true
}

// Login exchanges credentials for a token, persists it and loads the user
// profile. On failure the session stays Unauthenticated and no token is
// written.
func (s *Store) Login(ctx context.Context, username, password string) error {
	gen := s.begin()

	tok, err := s.client.Login(ctx, username, password)
	if err != nil {
		s.commit(gen, nil)
		return err
	}
	s.client.SetToken(tok.AccessToken)

	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		s.client.SetToken("")
		s.commit(gen, nil)
		return err
	}

	if err := config.SaveToken(tok.AccessToken); err != nil {
		// The session is still usable for this run.
		logx.L().Warn().Err(err).Msg("could not persist token")
	}

	if !s.commit(gen, &user) {
		return errors.New("session: login superseded")
	}
	logx.L().Info().Str("user", user.Username).Msg("logged in")
	return nil
}

// Resume validates a token loaded from disk or the environment. An expired
// or revoked token is cleared so the next start goes straight to login.
func (s *Store) Resume(ctx context.Context) error {
	gen := s.begin()

	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		s.commit(gen, nil)
		if errors.Is(err, api.ErrUnauthorized) {
			s.client.SetToken("")
			if cerr := config.ClearToken(); cerr != nil {
				logx.L().Warn().Err(cerr).Msg("could not clear stale token")
			}
		}
		return err
	}

	if !s.commit(gen, &user) {
		return errors.New("session: resume superseded")
	}
	return nil
}

// Logout drops the token and user locally. The server keeps no session
// state, so no request is made.
func (s *Store) Logout() error {
	s.mu.Lock()
	s.gen++
	s.state = Unauthenticated
	s.user = nil
	s.mu.Unlock()

	s.client.SetToken("")
	if err := config.ClearToken(); err != nil {
		return err
	}
	logx.L().Info().Msg("logged out")
	return nil
}
