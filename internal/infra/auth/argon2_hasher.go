// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"

	"handly/config"
	"handly/internal/domain/service"
	"handly/internal/errors"
)

const (
	argon2ID = "argon2id"

	minArgon2Memory      uint32 = 8 * 1024
	minArgon2Time        uint32 = 1
	minArgon2Parallelism uint8  = 1
	minArgon2SaltLength  uint32 = 16
	minArgon2KeyLength   uint32 = 16

	// Upper bounds cap the work a stored hash can demand from Check.
	maxArgon2Memory     uint32 = 1024 * 1024
	maxArgon2Time       uint32 = 16
	maxArgon2SaltLength uint32 = 64
	maxArgon2KeyLength  uint32 = 64
)

// argon2Hasher hashes with argon2id and encodes the result in PHC format:
//
//	$argon2id$v=19$m=65536,t=3,p=2$<salt>$<hash>
//
// Hashes written by the previous bcrypt store are still accepted by Check.
type argon2Hasher struct {
	params config.Argon2Config
	legacy *bcryptVerifier
}

// NewPasswordHasher builds the hasher from the auth section of the config.
func NewPasswordHasher(cfg *config.Config) (service.PasswordHasher, error) {
	params := config.DefaultArgon2Config()
	if cfg.Auth != nil {
		params = cfg.Auth.Argon2
	}

	return NewArgon2Hasher(params)
}

// NewArgon2Hasher rejects parameters weaker than the library minimums or
// heavier than Check is willing to verify.
func NewArgon2Hasher(params config.Argon2Config) (service.PasswordHasher, error) {
	h, err := newArgon2Hasher(params)
	if err != nil {
		return nil, err
	}

	return h, nil
}

func newArgon2Hasher(params config.Argon2Config) (*argon2Hasher, error) {
	switch {
	case params.Memory < minArgon2Memory || params.Memory > maxArgon2Memory:
		return nil, errors.Errorf("argon2 memory must be within [%d, %d] KiB", minArgon2Memory, maxArgon2Memory)
	case params.Time < minArgon2Time || params.Time > maxArgon2Time:
		return nil, errors.Errorf("argon2 time must be within [%d, %d]", minArgon2Time, maxArgon2Time)
	case params.Parallelism < minArgon2Parallelism:
		return nil, errors.New("argon2 parallelism must be >= 1")
	case params.SaltLength < minArgon2SaltLength || params.SaltLength > maxArgon2SaltLength:
		return nil, errors.Errorf("argon2 salt length must be within [%d, %d]", minArgon2SaltLength, maxArgon2SaltLength)
	case params.KeyLength < minArgon2KeyLength || params.KeyLength > maxArgon2KeyLength:
		return nil, errors.Errorf("argon2 key length must be within [%d, %d]", minArgon2KeyLength, maxArgon2KeyLength)
	}

	return &argon2Hasher{
		params: params,
		legacy: &bcryptVerifier{},
	}, nil
}

func (h *argon2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", errors.Wrap(err, "read salt")
	}

	key := argon2.IDKey([]byte(password), salt, h.params.Time, h.params.Memory, h.params.Parallelism, h.params.KeyLength)

	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2ID,
		argon2.Version,
		h.params.Memory,
		h.params.Time,
		h.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

func (h *argon2Hasher) Check(password, hash string) bool {
	if h.legacy.Recognizes(hash) {
		return h.legacy.Check(password, hash)
	}

	phc, err := decodePHC(hash)
	if err != nil {
		return false
	}

	computed := argon2.IDKey([]byte(password), phc.salt, phc.time, phc.memory, phc.parallelism, uint32(len(phc.key)))

	return subtle.ConstantTimeCompare(computed, phc.key) == 1
}

type phcHash struct {
	memory      uint32
	time        uint32
	parallelism uint8
	salt        []byte
	key         []byte
}

func decodePHC(encoded string) (*phcHash, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != argon2ID {
		return nil, errors.New("not an argon2id PHC string")
	}

	if parts[2] != "v="+strconv.Itoa(argon2.Version) {
		return nil, errors.Errorf("unsupported argon2 version %q", parts[2])
	}

	phc := &phcHash{}
	if err := phc.decodeParams(parts[3]); err != nil {
		return nil, err
	}

	var err error
	if phc.salt, err = decodeB64(parts[4]); err != nil || len(phc.salt) < int(minArgon2SaltLength) || len(phc.salt) > int(maxArgon2SaltLength) {
		return nil, errors.New("invalid salt")
	}
	if phc.key, err = decodeB64(parts[5]); err != nil || len(phc.key) == 0 || len(phc.key) > int(maxArgon2KeyLength) {
		return nil, errors.New("invalid key")
	}

	return phc, nil
}

func (p *phcHash) decodeParams(section string) error {
	seen := 0
	for _, pair := range strings.Split(section, ",") {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return errors.Errorf("invalid parameter %q", pair)
		}

		switch name {
		case "m":
			v, err := strconv.ParseUint(raw, 10, 32)
			if err != nil || uint32(v) < minArgon2Memory || uint32(v) > maxArgon2Memory {
				return errors.New("invalid memory parameter")
			}
			p.memory = uint32(v)
		case "t":
			v, err := strconv.ParseUint(raw, 10, 32)
			if err != nil || uint32(v) < minArgon2Time || uint32(v) > maxArgon2Time {
				return errors.New("invalid time parameter")
			}
			p.time = uint32(v)
		case "p":
			v, err := strconv.ParseUint(raw, 10, 8)
			if err != nil || uint8(v) < minArgon2Parallelism {
				return errors.New("invalid parallelism parameter")
			}
			p.parallelism = uint8(v)
		default:
			return errors.Errorf("unknown parameter %q", name)
		}
		seen++
	}

	if seen != 3 || p.memory == 0 || p.time == 0 || p.parallelism == 0 {
		return errors.New("missing parameters")
	}

	return nil
}

// decodeB64 accepts both padded and unpadded standard base64, which covers
// PHC strings produced by other argon2 libraries.
func decodeB64(s string) ([]byte, error) {
	if strings.HasSuffix(s, "=") {
		return base64.StdEncoding.DecodeString(s)
	}

	return base64.RawStdEncoding.DecodeString(s)
}
