package adv

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/bletio/ble/assigned"
	"github.com/bletio/ble/codec"
	"github.com/pkg/errors"
)

// URI is the URI AD structure. A provisioned scheme is replaced by its code;
// any other scheme is sent in full after the empty scheme code.
type URI struct {
	scheme assigned.URIScheme
	body   string
}

func validScheme(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return true
}

// NewURI validates uri as an absolute RFC 3986 URI.
func NewURI(uri string) (URI, error) {
	i := strings.IndexByte(uri, ':')
	if i < 0 || !validScheme(uri[:i]) {
		return URI{}, errors.Wrapf(ErrInvalidURI, "%q has no valid scheme", uri)
	}
	if _, err := url.Parse(uri); err != nil {
		return URI{}, errors.Wrapf(ErrInvalidURI, "%q: %v", uri, err)
	}

	u := URI{scheme: assigned.URISchemeEmpty, body: uri}
	if s, ok := assigned.LookupURIScheme(uri[:i+1]); ok {
		u = URI{scheme: s, body: uri[i+1:]}
	}
	if err := checkPayload(TypeURI, u.payloadSize()); err != nil {
		return URI{}, err
	}
	return u, nil
}

// Scheme returns the scheme code sent on air.
func (u URI) Scheme() assigned.URIScheme { return u.scheme }

// String returns the full URI.
func (u URI) String() string {
	n, ok := u.scheme.Name()
	if !ok {
		return fmt.Sprintf("scheme(0x%04X)%s", uint16(u.scheme), u.body)
	}
	return n + u.body
}

// Type returns TypeURI.
func (u URI) Type() Type { return TypeURI }

// Unique returns false.
func (u URI) Unique() bool { return false }

// EncodedSize returns the size of the structure.
func (u URI) EncodedSize() int { return encodedSize(u) }

// Encode writes the structure.
func (u URI) Encode(b *codec.Buffer) (int, error) { return encode(b, u) }

func (u URI) payloadSize() int { return utf8.RuneLen(rune(u.scheme)) + len(u.body) }

func (u URI) writePayload(b *codec.Buffer) {
	var s [utf8.UTFMax]byte
	n := utf8.EncodeRune(s[:], rune(u.scheme))
	b.CopyFromSlice(s[:n])
	b.CopyFromSlice([]byte(u.body))
}
