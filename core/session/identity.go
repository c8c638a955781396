package session

import (
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/shule/core"
)

var (
	// errors
	ErrInvalidCredentials = errors.New("invalid credentials")

	defaultPassword = "123456"
	credsOnce       sync.Once
	creds           []credential
)

// Identity is who is logged in.
type Identity struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
}

type credential struct {
	identity     Identity
	passwordHash []byte
}

// credentials returns the fixed accounts, one per role.
func credentials() []credential {
	credsOnce.Do(func() {
		ids := []Identity{
			{ID: 1, Username: "admin", Name: "Admin User", Role: Admin},
			{ID: 2, Username: "teacher", Name: "Teacher User", Role: Teacher},
			{ID: 3, Username: "student", Name: "Student User", Role: Student},
			{ID: 4, Username: "parent", Name: "Parent User", Role: Parent},
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
		if err != nil {
			panic(errors.Wrap(err, "hashing default password"))
		}
		for _, id := range ids {
			creds = append(creds, credential{identity: id, passwordHash: hash})
		}
	})
	return creds
}

// Authenticate checks username and password against the fixed accounts.
func Authenticate(username, password string) (Identity, error) {
	username = core.CleanString(username, true /* lower */)
	for _, c := range credentials() {
		if c.identity.Username != username {
			continue
		}
		if err := bcrypt.CompareHashAndPassword(c.passwordHash, []byte(password)); err != nil {
			return Identity{}, ErrInvalidCredentials
		}
		return c.identity, nil
	}
	return Identity{}, ErrInvalidCredentials
}
