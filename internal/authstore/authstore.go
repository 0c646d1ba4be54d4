// Package authstore keeps the terminal client's login on disk: the session
// token the server issued and the user it belongs to. It holds no passwords
// and makes no decisions about validity beyond the expiry the server reported.
package authstore

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	go_json "github.com/goccy/go-json"
	bolt "go.etcd.io/bbolt"
	"golang.org/x/oauth2"
)

var (
	ErrNoSession    = errors.New("not logged in")
	ErrStoreInUse   = errors.New("auth store is locked by another moodly process")
	ErrSessionEnded = errors.New("session expired, log in again")
)

var (
	bucketName = []byte("auth")
	sessionKey = []byte("session")
)

const fileMode fs.FileMode = 0o600

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Session is what a successful login or signup leaves behind.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
	SavedAt   time.Time `json:"saved_at"`
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

type Store struct {
	db  *bolt.DB
	now func() time.Time
}

var _ oauth2.TokenSource = (*Store)(nil)

// Open opens (creating if needed) the store at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, fileMode, &bolt.Options{Timeout: time.Second})
	if err != nil {
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, ErrStoreInUse
		}
		return nil, fmt.Errorf("failed to open auth store: %w", err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create auth bucket: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces any stored session.
func (s *Store) Save(sess Session) error {
	if sess.Token == "" {
		return errors.New("session token is empty")
	}
	sess.SavedAt = s.now().UTC()

	value, err := go_json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put(sessionKey, value)
	})
}

// Load returns the stored session, ErrNoSession when there is none, or
// ErrSessionEnded when the server-reported expiry has passed.
func (s *Store) Load() (*Session, error) {
	var sess Session
	found := false

	err := s.db.View(func(tx *bolt.Tx) error {
		value := tx.Bucket(bucketName).Get(sessionKey)
		if len(value) == 0 {
			return nil
		}
		found = true
		return go_json.Unmarshal(value, &sess)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if !found {
		return nil, ErrNoSession
	}
	if sess.Expired(s.now()) {
		return &sess, ErrSessionEnded
	}
	return &sess, nil
}

// Clear forgets the session. Clearing an empty store is not an error.
func (s *Store) Clear() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Delete(sessionKey)
	})
}

// Authenticated reports whether a usable session is stored.
func (s *Store) Authenticated() bool {
	_, err := s.Load()
	return err == nil
}

// Token exposes the session as a bearer token for the API client.
func (s *Store) Token() (*oauth2.Token, error) {
	sess, err := s.Load()
	if err != nil {
		return nil, err
	}
	return &oauth2.Token{
		AccessToken: sess.Token,
		TokenType:   "Bearer",
		Expiry:      sess.ExpiresAt,
	}, nil
}
