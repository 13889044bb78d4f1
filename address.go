package lockbox

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/iov-one/lockbox/crypto/bech32"
	"github.com/iov-one/lockbox/errors"
	"github.com/mr-tron/base58"
)

const (
	// AddressLength is the length of every address. Ledger keys rely on
	// it: an owner prefix of this length can never collide with another
	// owner's prefix.
	AddressLength = 20

	// AddressPrefix is the bech32 human readable part used when
	// printing addresses for people.
	AddressPrefix = "lock"
)

// (?s) allows any byte, including a newline, in the data section.
var conditionFormat = regexp.MustCompile(`(?s)^([a-zA-Z0-9_\-]{3,8})/([a-zA-Z0-9_\-]{3,8})/(.+)$`)

// Condition describes who can authorize an action. It is formatted as
//
//	extension/type/data
//
// for example a signature condition is "sigs/ed25519/<public key>".
type Condition []byte

// NewCondition builds a condition from its parts.
func NewCondition(ext, typ string, data []byte) Condition {
	return append([]byte(ext+"/"+typ+"/"), data...)
}

// Parse splits the condition into its parts.
func (c Condition) Parse() (ext, typ string, data []byte, err error) {
	chunks := conditionFormat.FindSubmatch(c)
	if chunks == nil {
		return "", "", nil, errors.ErrInput.Newf("condition: %X", []byte(c))
	}
	return string(chunks[1]), string(chunks[2]), chunks[3], nil
}

// Address returns the address controlled by this condition.
func (c Condition) Address() Address {
	if c == nil {
		return nil
	}
	h := sha256.Sum256(c)
	return Address(h[:AddressLength])
}

// Equals returns true if both conditions are identical.
func (c Condition) Equals(o Condition) bool {
	return bytes.Equal(c, o)
}

// Validate returns an error for a condition that cannot be parsed.
func (c Condition) Validate() error {
	_, _, _, err := c.Parse()
	return err
}

// String keeps the extension and type readable and hex encodes the data.
func (c Condition) String() string {
	ext, typ, data, err := c.Parse()
	if err != nil {
		return fmt.Sprintf("invalid condition: %X", []byte(c))
	}
	return fmt.Sprintf("%s/%s/%X", ext, typ, data)
}

func (c Condition) MarshalJSON() ([]byte, error) {
	var s string
	if c != nil {
		s = c.String()
	}
	return json.Marshal(s)
}

func (c *Condition) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInput, "condition must be a string")
	}
	cond, err := parseCondition(s)
	if err != nil {
		return err
	}
	*c = cond
	return nil
}

func parseCondition(s string) (Condition, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return nil, errors.ErrInput.New("invalid condition format")
	}
	data, err := hex.DecodeString(parts[2])
	if err != nil {
		return nil, errors.ErrInput.Newf("condition data: %s", err)
	}
	c := NewCondition(parts[0], parts[1], data)
	return c, c.Validate()
}

// Address identifies a principal. It is a one way digest of a Condition.
type Address []byte

// Equals returns true if both addresses are identical.
func (a Address) Equals(b Address) bool {
	return bytes.Equal(a, b)
}

// Validate returns an error if the address has the wrong length.
func (a Address) Validate() error {
	if len(a) != AddressLength {
		return errors.ErrInput.Newf("address length %d", len(a))
	}
	return nil
}

// String returns the upper case hex representation.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return strings.ToUpper(hex.EncodeToString(a))
}

// Bech32 returns the address in bech32 form using AddressPrefix.
func (a Address) Bech32() string {
	s, err := bech32.Encode(AddressPrefix, a)
	if err != nil {
		return a.String()
	}
	return s
}

// MarshalJSON uses hex instead of the default base64 encoding.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Address) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInput, "address must be a string")
	}
	if s == "" {
		*a = nil
		return nil
	}
	addr, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// ParseAddress decodes an address from its text representation. The
// format can be selected with a prefix:
//
//	hex:<hex encoded bytes> (the default when no prefix is given)
//	cond:<condition as printed by Condition.String>
//	bech32:<bech32 string>
//	base58:<base58 encoded bytes>
//
// A bech32 string starting with AddressPrefix is recognized without the
// format prefix. The result is always validated.
func ParseAddress(s string) (Address, error) {
	format, enc := "hex", s
	if chunks := strings.SplitN(s, ":", 2); len(chunks) == 2 {
		format, enc = chunks[0], chunks[1]
	} else if strings.HasPrefix(s, AddressPrefix+"1") {
		format = "bech32"
	}

	var addr Address
	switch format {
	case "hex":
		raw, err := hex.DecodeString(enc)
		if err != nil {
			return nil, errors.ErrInput.Newf("hex address: %s", err)
		}
		addr = raw
	case "cond":
		c, err := parseCondition(enc)
		if err != nil {
			return nil, err
		}
		addr = c.Address()
	case "bech32":
		_, raw, err := bech32.Decode(enc)
		if err != nil {
			return nil, err
		}
		addr = raw
	case "base58":
		raw, err := base58.Decode(enc)
		if err != nil {
			return nil, errors.ErrInput.Newf("base58 address: %s", err)
		}
		addr = raw
	default:
		return nil, errors.ErrType.Newf("unknown address format %q", format)
	}
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	return addr, nil
}
