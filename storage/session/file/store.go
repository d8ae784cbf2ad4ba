// Package filestore persists the session under the client's config
// directory. The entire durable client-side state is two keys: the raw
// bearer token and the user profile JSON, mirroring the browser clients'
// two storage keys.
package filestore

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/umoja/portal/core"
	"github.com/umoja/portal/core/session"
)

const (
	tokenFile = "token"
	userFile  = "user.json"
)

type Store struct {
	dir string
}

var _ session.Store = (*Store)(nil)

func NewStore(conf *core.Config) (*Store, error) {
	if err := os.MkdirAll(conf.Storage.Dir, 0o700); err != nil {
		return nil, errors.Wrap(err, "creating storage dir")
	}
	return &Store{dir: conf.Storage.Dir}, nil
}

func (s *Store) Get() (session.Session, bool) {
	token, err := ioutil.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil || len(token) == 0 {
		return session.Session{}, false
	}

	var usr session.User
	if data, err := ioutil.ReadFile(filepath.Join(s.dir, userFile)); err == nil {
		// a missing or corrupt profile is recoverable: the token claims
		// still identify the user
		_ = json.Unmarshal(data, &usr)
	}
	return session.Session{Token: string(token), User: usr}, true
}

func (s *Store) Set(token string, usr session.User) error {
	if err := s.writeAtomic(tokenFile, []byte(token)); err != nil {
		return err
	}
	data, err := json.Marshal(usr)
	if err != nil {
		return errors.Wrap(err, "marshalling user")
	}
	return s.writeAtomic(userFile, data)
}

func (s *Store) Clear() error {
	var first error
	for _, name := range []string{tokenFile, userFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) && first == nil {
			first = errors.Wrapf(err, "removing %s", name)
		}
	}
	return first
}

// writeAtomic writes via a temp file + rename so a crash mid-write never
// leaves a truncated key.
func (s *Store) writeAtomic(name string, data []byte) error {
	tmp, err := ioutil.TempFile(s.dir, name+".*")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		return errors.Wrap(err, "restricting permissions")
	}
	return errors.Wrap(os.Rename(tmp.Name(), filepath.Join(s.dir, name)), "renaming temp file")
}
