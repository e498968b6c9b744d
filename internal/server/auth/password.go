package auth

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/caet/internal/common"
	"golang.org/x/crypto/argon2"
)

// Argon2Params tunes the argon2id password digest.
type Argon2Params struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLen     uint32
	KeyLen      uint32
}

// DefaultArgon2Params are the parameters used for newly stored digests.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Memory:      64 * 1024,
		Iterations:  1,
		Parallelism: 4,
		SaltLen:     16,
		KeyLen:      32,
	}
}

var errMalformedDigest = errors.New("malformed password digest")

const digestFormat = "argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s"

// HashPassword derives a PHC-style argon2id digest:
//
//	argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>
func HashPassword(password string, p Argon2Params) (string, error) {
	if password == "" {
		return "", errors.New("password is required")
	}

	salt := common.GenerateRandByteArray(int(p.SaltLen))
	key := argon2.IDKey([]byte(password), salt, p.Iterations, p.Memory, p.Parallelism, p.KeyLen)

	enc := base64.RawStdEncoding
	return fmt.Sprintf(digestFormat, argon2.Version, p.Memory, p.Iterations, p.Parallelism,
		enc.EncodeToString(salt), enc.EncodeToString(key)), nil
}

// VerifyPassword reports whether password matches digest. A digest that is
// not an argon2id PHC string (such as the third-party placeholder marker)
// never matches and yields an error describing why.
func VerifyPassword(password, digest string) (bool, error) {
	if password == "" || digest == "" {
		return false, nil
	}

	p, salt, want, err := parseDigest(digest)
	if err != nil {
		return false, err
	}

	got := argon2.IDKey([]byte(password), salt, p.Iterations, p.Memory, p.Parallelism, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

func parseDigest(digest string) (Argon2Params, []byte, []byte, error) {
	var p Argon2Params

	parts := strings.Split(digest, "$")
	if len(parts) != 5 || parts[0] != "argon2id" {
		return p, nil, nil, errMalformedDigest
	}

	var version int
	if _, err := fmt.Sscanf(parts[1], "v=%d", &version); err != nil {
		return p, nil, nil, errMalformedDigest
	}
	if version != argon2.Version {
		return p, nil, nil, fmt.Errorf("unsupported argon2 version %d", version)
	}
	if _, err := fmt.Sscanf(parts[2], "m=%d,t=%d,p=%d", &p.Memory, &p.Iterations, &p.Parallelism); err != nil {
		return p, nil, nil, errMalformedDigest
	}

	enc := base64.RawStdEncoding
	salt, err := enc.DecodeString(parts[3])
	if err != nil || len(salt) == 0 {
		return p, nil, nil, errMalformedDigest
	}
	key, err := enc.DecodeString(parts[4])
	if err != nil || len(key) < 16 {
		return p, nil, nil, errMalformedDigest
	}

	return p, salt, key, nil
}
