package ops

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/teledrop/teledrop/internal/db"
	"github.com/teledrop/teledrop/internal/errors"
	"github.com/teledrop/teledrop/internal/record"
)

// maxMintAttempts bounds collision retries when inserting a record.
// ULIDs collide only when the same millisecond draws identical entropy,
// so a second attempt is already overkill; the cap keeps a broken
// entropy source from looping forever.
const maxMintAttempts = 5

// generateToken mints a new ULID token. A variable so tests can force
// the collision-retry path.
var generateToken = func() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// insertWithFreshToken mints a token, runs insert with it, and retries
// with a new token on a UNIQUE collision. An existing record is never
// overwritten.
func insertWithFreshToken(kind record.Kind, refs []record.SourceRef, insert func(*record.Record) error) (string, error) {
	for attempt := 0; attempt < maxMintAttempts; attempt++ {
		token, err := generateToken()
		if err != nil {
			return "", errors.NewInternal(err)
		}

		r := &record.Record{
			Token:     token,
			Kind:      kind,
			Refs:      refs,
			CreatedAt: time.Now().Unix(),
		}

		err = insert(r)
		if err == db.ErrUniqueConstraint {
			continue
		}
		if err != nil {
			return "", err
		}
		return token, nil
	}
	return "", errors.NewInternal(fmt.Errorf("could not mint a unique token after %d attempts", maxMintAttempts))
}
