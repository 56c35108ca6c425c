package stablecoin

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/btcsuite/btcutil/bech32"
	"github.com/iov-one/stablecoin/errors"
)

// AddressLength is the size of every address.
const AddressLength = 20

// Address identifies an account: a signatory, a token holder or a module
// wallet. It is the truncated sha256 digest of a condition.
type Address []byte

// NewAddress digests data into an address. Nil data gives a nil address.
func NewAddress(data []byte) Address {
	if data == nil {
		return nil
	}
	sum := sha256.Sum256(data)
	return Address(sum[:AddressLength])
}

func (a Address) Equals(other Address) bool {
	return bytes.Equal(a, other)
}

func (a Address) Validate() error {
	if len(a) != AddressLength {
		return errors.Wrapf(errors.ErrInvalidInput, "address: %v", a)
	}
	return nil
}

// String returns the upper case hex form.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return strings.ToUpper(hex.EncodeToString(a))
}

// Bech32String encodes the address with the given human readable part.
func (a Address) Bech32String(hrp string) (string, error) {
	data, err := bech32.ConvertBits(a, 8, 5, true)
	if err != nil {
		return "", errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	enc, err := bech32.Encode(hrp, data)
	if err != nil {
		return "", errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return enc, nil
}

// MarshalJSON writes hex instead of the base64 used for []byte.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToUpper(hex.EncodeToString(a)))
}

func (a *Address) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(err, "cannot decode json")
	}
	addr, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// addressDecoders maps a format prefix to its decoder.
var addressDecoders = map[string]func(string) (Address, error){
	"hex":    decodeHexAddress,
	"cond":   decodeConditionAddress,
	"bech32": decodeBech32Address,
}

// ParseAddress reads an address written as "<format>:<value>", where format
// is one of hex, cond or bech32. Without a prefix the value is hex. An empty
// value is the nil address.
func ParseAddress(s string) (Address, error) {
	format, value := "hex", s
	if i := strings.IndexByte(s, ':'); i >= 0 {
		format, value = s[:i], s[i+1:]
	}
	if value == "" {
		return nil, nil
	}
	decode, ok := addressDecoders[format]
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidType, "unknown format %q", format)
	}
	return decode(value)
}

func decodeHexAddress(s string) (Address, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, "cannot decode hex")
	}
	return validAddress(raw)
}

func decodeConditionAddress(s string) (Address, error) {
	cond, err := parseCondition(s)
	if err != nil {
		return nil, err
	}
	if err := cond.Validate(); err != nil {
		return nil, err
	}
	return cond.Address(), nil
}

func decodeBech32Address(s string) (Address, error) {
	_, data, err := bech32.Decode(s)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "deserialize bech32: %s", err)
	}
	raw, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "convert bech32 bits: %s", err)
	}
	return validAddress(raw)
}

func validAddress(raw []byte) (Address, error) {
	if err := Address(raw).Validate(); err != nil {
		return nil, err
	}
	return Address(raw), nil
}
