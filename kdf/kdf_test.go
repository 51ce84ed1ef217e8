package kdf_test

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"hash"
	"io"
	"strings"
	"testing"

	"golang.org/x/crypto/sha3"

	"github.com/caevyn/PasswordHasher/kdf"
)

// referencePBKDF2 is a straight transcription of RFC 8018 §5.2 on top of
// crypto/hmac.  It shares no code with golang.org/x/crypto/pbkdf2 and is
// used to cross-check DeriveKey.
func referencePBKDF2(h func() hash.Hash, password, salt []byte, iter, keyLen int) []byte {
	prf := hmac.New(h, password)
	hLen := prf.Size()
	blocks := (keyLen + hLen - 1) / hLen

	out := make([]byte, 0, blocks*hLen)
	for i := 1; i <= blocks; i++ {
		prf.Reset()
		prf.Write(salt)
		prf.Write([]byte{byte(i >> 24), byte(i >> 16), byte(i >> 8), byte(i)})
		u := prf.Sum(nil)
		t := append([]byte(nil), u...)
		for n := 2; n <= iter; n++ {
			prf.Reset()
			prf.Write(u)
			u = prf.Sum(nil)
			for j := range t {
				t[j] ^= u[j]
			}
		}
		out = append(out, t...)
	}
	return out[:keyLen]
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	return b
}

// ──────────────────────────────────────────────────────────────────────────────
// DeriveKey
// ──────────────────────────────────────────────────────────────────────────────

// RFC 6070 test vectors for PBKDF2-HMAC-SHA1 plus the commonly published
// PBKDF2-HMAC-SHA256 vectors.
func TestDeriveKey_KnownVectors(t *testing.T) {
	tests := []struct {
		name     string
		alg      kdf.Algorithm
		password string
		salt     string
		iter     int
		keyLen   int
		want     string
	}{
		{"sha1 c=1", kdf.HMACSHA1, "password", "salt", 1, 20, "0c60c80f961f0e71f3a9b524af6012062fe037a6"},
		{"sha1 c=2", kdf.HMACSHA1, "password", "salt", 2, 20, "ea6c014dc72d6f8ccd1ed92ace1d41f0d8de8957"},
		{"sha1 c=4096", kdf.HMACSHA1, "password", "salt", 4096, 20, "4b007901b765489abead49d926f721d065a429c1"},
		{
			"sha1 long inputs", kdf.HMACSHA1,
			"passwordPASSWORDpassword", "saltSALTsaltSALTsaltSALTsaltSALTsalt", 4096, 25,
			"3d2eec4fe41c849b80c8d83662c0e44a8b291a964cf2f07038",
		},
		{"sha1 embedded nul", kdf.HMACSHA1, "pass\x00word", "sa\x00lt", 4096, 16, "56fa6aa75548099dcc37d7f03425e0c3"},
		{"sha256 c=1", kdf.HMACSHA256, "password", "salt", 1, 32, "120fb6cffcf8b32c43e7225256c4f837a86548c92ccc35480805987cb70be17b"},
		{"sha256 c=2", kdf.HMACSHA256, "password", "salt", 2, 32, "ae4d0c95af6b46d32d0adff928f06dd02a303f8ef3c251dfd6e2d85a95474c43"},
		{"sha256 c=4096", kdf.HMACSHA256, "password", "salt", 4096, 32, "c5e478d59288c841aa530db6845c4c8d962893a001ce4e11a4963873aa98134a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := kdf.DeriveKey(tt.alg, tt.password, []byte(tt.salt), tt.iter, tt.keyLen)
			if err != nil {
				t.Fatalf("DeriveKey: %v", err)
			}
			if want := mustHex(t, tt.want); !bytes.Equal(got, want) {
				t.Errorf("got %x, want %x", got, want)
			}
		})
	}
}

// TestDeriveKey_MatchesReferenceSHA1 derives "Cats" with a fresh salt and
// 1000 iterations and compares it with the independent RFC 2898 derivation.
func TestDeriveKey_MatchesReferenceSHA1(t *testing.T) {
	salt, err := kdf.GenerateSalt()
	if err != nil {
		t.Fatal(err)
	}
	got, err := kdf.DeriveKey(kdf.HMACSHA1, "Cats", salt, 1000, kdf.HMACSHA1.Size())
	if err != nil {
		t.Fatal(err)
	}
	want := referencePBKDF2(sha1.New, []byte("Cats"), salt, 1000, sha1.Size)
	if !bytes.Equal(got, want) {
		t.Errorf("DeriveKey = %x, reference = %x", got, want)
	}
}

func TestDeriveKey_MatchesReferenceAllAlgorithms(t *testing.T) {
	hashes := map[kdf.Algorithm]func() hash.Hash{
		kdf.HMACSHA1:     sha1.New,
		kdf.HMACSHA256:   sha256.New,
		kdf.HMACSHA384:   sha512.New384,
		kdf.HMACSHA512:   sha512.New,
		kdf.HMACSHA3_256: sha3.New256,
		kdf.HMACSHA3_512: sha3.New512,
	}
	if len(hashes) != len(kdf.Algorithms()) {
		t.Fatalf("reference table covers %d algorithms, package supports %d",
			len(hashes), len(kdf.Algorithms()))
	}
	salt := []byte("0123456789abcdef0123456789abcdef")
	for alg, h := range hashes {
		t.Run(alg.String(), func(t *testing.T) {
			// Ask for more than one block to exercise the block counter.
			keyLen := alg.Size()*2 + 3
			got, err := kdf.DeriveKey(alg, "correct horse battery staple", salt, 7, keyLen)
			if err != nil {
				t.Fatal(err)
			}
			want := referencePBKDF2(h, []byte("correct horse battery staple"), salt, 7, keyLen)
			if !bytes.Equal(got, want) {
				t.Errorf("DeriveKey = %x, reference = %x", got, want)
			}
		})
	}
}

func TestDeriveKey_Deterministic(t *testing.T) {
	salt := bytes.Repeat([]byte{0x42}, kdf.SaltSize)
	a, _ := kdf.DeriveKey(kdf.HMACSHA512, "pw", salt, 10, 64)
	b, _ := kdf.DeriveKey(kdf.HMACSHA512, "pw", salt, 10, 64)
	if !bytes.Equal(a, b) {
		t.Error("same inputs produced different keys")
	}
}

func TestDeriveKey_InputsAffectOutput(t *testing.T) {
	salt := bytes.Repeat([]byte{0x01}, kdf.SaltSize)
	base, _ := kdf.DeriveKey(kdf.HMACSHA512, "pw", salt, 10, 64)

	otherSalt := bytes.Repeat([]byte{0x02}, kdf.SaltSize)
	variants := map[string][]byte{}
	variants["password"], _ = kdf.DeriveKey(kdf.HMACSHA512, "pw2", salt, 10, 64)
	variants["salt"], _ = kdf.DeriveKey(kdf.HMACSHA512, "pw", otherSalt, 10, 64)
	variants["iterations"], _ = kdf.DeriveKey(kdf.HMACSHA512, "pw", salt, 11, 64)
	variants["algorithm"], _ = kdf.DeriveKey(kdf.HMACSHA3_512, "pw", salt, 10, 64)
	for name, v := range variants {
		if bytes.Equal(base, v) {
			t.Errorf("changing %s did not change the derived key", name)
		}
	}
}

func TestDeriveKey_UTF8Password(t *testing.T) {
	salt := []byte("salt")
	got, err := kdf.DeriveKey(kdf.HMACSHA256, "pässwörd✓", salt, 3, 32)
	if err != nil {
		t.Fatal(err)
	}
	want := referencePBKDF2(sha256.New, []byte("pässwörd✓"), salt, 3, 32)
	if !bytes.Equal(got, want) {
		t.Errorf("got %x, want %x", got, want)
	}
}

func TestDeriveKey_UnsupportedAlgorithm(t *testing.T) {
	_, err := kdf.DeriveKey("hmac-md5", "pw", []byte("salt"), 1, 16)
	if !errors.Is(err, kdf.ErrUnsupportedAlgorithm) {
		t.Errorf("expected ErrUnsupportedAlgorithm, got %v", err)
	}
}

func TestDeriveKey_InvalidKeyLength(t *testing.T) {
	for _, n := range []int{0, -1} {
		_, err := kdf.DeriveKey(kdf.HMACSHA512, "pw", []byte("salt"), 1, n)
		if !errors.Is(err, kdf.ErrInvalidKeyLength) {
			t.Errorf("keyLen %d: expected ErrInvalidKeyLength, got %v", n, err)
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Salts
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerateSalt_LengthAndFreshness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 64; i++ {
		s, err := kdf.GenerateSalt()
		if err != nil {
			t.Fatalf("GenerateSalt: %v", err)
		}
		if len(s) != kdf.SaltSize {
			t.Fatalf("len = %d, want %d", len(s), kdf.SaltSize)
		}
		if seen[string(s)] {
			t.Fatal("GenerateSalt returned a repeated salt")
		}
		seen[string(s)] = true
	}
}

func TestSaltSize(t *testing.T) {
	if kdf.SaltSize != 32 {
		t.Errorf("SaltSize = %d, want 32", kdf.SaltSize)
	}
}

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

func TestReadSalt_ReaderError(t *testing.T) {
	boom := errors.New("entropy pool unavailable")
	_, err := kdf.ReadSalt(failingReader{err: boom})
	if !errors.Is(err, kdf.ErrEntropy) {
		t.Errorf("expected ErrEntropy, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("expected underlying error to be wrapped, got %v", err)
	}
}

func TestReadSalt_ShortRead(t *testing.T) {
	_, err := kdf.ReadSalt(strings.NewReader("too short"))
	if !errors.Is(err, kdf.ErrEntropy) {
		t.Errorf("expected ErrEntropy, got %v", err)
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected io.ErrUnexpectedEOF, got %v", err)
	}
}

func TestReadSalt_ExactBytes(t *testing.T) {
	src := bytes.Repeat([]byte{0xAB}, kdf.SaltSize+10)
	s, err := kdf.ReadSalt(bytes.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(s, src[:kdf.SaltSize]) {
		t.Errorf("ReadSalt = %x", s)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// ConstantTimeEqual
// ──────────────────────────────────────────────────────────────────────────────

func TestConstantTimeEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b []byte
		want bool
	}{
		{"both nil", nil, nil, true},
		{"nil and empty", nil, []byte{}, true},
		{"equal", []byte{1, 2, 3}, []byte{1, 2, 3}, true},
		{"first byte differs", []byte{0, 2, 3}, []byte{1, 2, 3}, false},
		{"last byte differs", []byte{1, 2, 3}, []byte{1, 2, 4}, false},
		{"length differs", []byte{1, 2, 3}, []byte{1, 2}, false},
		{"prefix", []byte{1, 2}, []byte{1, 2, 3}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := kdf.ConstantTimeEqual(tt.a, tt.b); got != tt.want {
				t.Errorf("ConstantTimeEqual(%x, %x) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
