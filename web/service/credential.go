package service

import (
	"errors"
	"fmt"
	"os"

	"github.com/dukcapil-minsel/suket/model"
	"github.com/dukcapil-minsel/suket/util/common"
	"github.com/dukcapil-minsel/suket/util/crypto"

	"github.com/pelletier/go-toml/v2"
)

// CredentialStore checks staff logins.
type CredentialStore interface {
	Verify(username, password string) (*model.Credential, bool)
}

// StaticCredentialStore is a fixed set of credentials loaded once at start.
type StaticCredentialStore struct {
	users map[string]model.Credential
}

func NewStaticCredentialStore(creds ...model.Credential) *StaticCredentialStore {
	s := &StaticCredentialStore{users: make(map[string]model.Credential, len(creds))}
	for _, c := range creds {
		c.Role = model.ParseRole(string(c.Role))
		s.users[c.Username] = c
	}
	return s
}

var defaultUsers = []struct {
	username string
	password string
}{
	{"dukcapil", "minsel2024"},
	{"admin", "amuranghebat"},
}

// DefaultCredentialStore hashes the built-in administrator accounts.
func DefaultCredentialStore() (*StaticCredentialStore, error) {
	creds := make([]model.Credential, 0, len(defaultUsers))
	for _, u := range defaultUsers {
		hash, err := crypto.HashPasswordAsBcrypt(u.password)
		if err != nil {
			return nil, err
		}
		creds = append(creds, model.Credential{
			Username:     u.username,
			PasswordHash: hash,
			Role:         model.Administrator,
		})
	}
	return NewStaticCredentialStore(creds...), nil
}

type usersFile struct {
	Users []model.Credential `toml:"user"`
}

// LoadCredentialStore reads a TOML file of [[user]] tables holding
// username, password_hash and role.
func LoadCredentialStore(path string) (*StaticCredentialStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f usersFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(f.Users) == 0 {
		return nil, errors.New("users file has no [[user]] entries")
	}
	for i, u := range f.Users {
		if u.Username == "" || u.PasswordHash == "" {
			return nil, common.NewErrorf("user #%d: username and password_hash are required", i+1)
		}
	}
	return NewStaticCredentialStore(f.Users...), nil
}

func (s *StaticCredentialStore) Verify(username, password string) (*model.Credential, bool) {
	cred, ok := s.users[username]
	if !ok {
		return nil, false
	}
	if !crypto.CheckPasswordHash(cred.PasswordHash, password) {
		return nil, false
	}
	return &cred, true
}
