package adv

import (
	"unicode/utf8"

	"github.com/bletio/ble"
	"github.com/bletio/ble/assigned"
	"github.com/bletio/ble/codec"
	"github.com/pkg/errors"
)

type decodeFunc func(p []byte) (AdStruct, error)

var decoders = map[Type]decodeFunc{
	TypeFlags:                             decodeFlags,
	TypeIncompleteServiceUUID16:           decodeServiceUUID16(false),
	TypeCompleteServiceUUID16:             decodeServiceUUID16(true),
	TypeIncompleteServiceUUID32:           decodeServiceUUID32(false),
	TypeCompleteServiceUUID32:             decodeServiceUUID32(true),
	TypeIncompleteServiceUUID128:          decodeServiceUUID128(false),
	TypeCompleteServiceUUID128:            decodeServiceUUID128(true),
	TypeShortenedLocalName:                decodeLocalName(false),
	TypeCompleteLocalName:                 decodeLocalName(true),
	TypeTxPowerLevel:                      decodeTxPowerLevel,
	TypePeripheralConnectionIntervalRange: decodeConnectionIntervalRange,
	TypeServiceSolicitationUUID16:         decodeSolicitation16,
	TypeServiceSolicitationUUID32:         decodeSolicitation32,
	TypeServiceSolicitationUUID128:        decodeSolicitation128,
	TypeServiceData16:                     decodeServiceData16,
	TypeServiceData32:                     decodeServiceData32,
	TypeServiceData128:                    decodeServiceData128,
	TypePublicTargetAddress:               decodeTargets(false),
	TypeRandomTargetAddress:               decodeTargets(true),
	TypeAppearance:                        decodeAppearance,
	TypeAdvertisingInterval:               decodeAdvertisingInterval,
	TypeURI:                               decodeURI,
	TypeLESupportedFeatures:               decodeLESupportedFeatures,
	TypeManufacturerSpecificData:          decodeManufacturerData,
}

// Parse splits p into AD structures. Any malformed structure fails the whole
// parse; there is no attempt to skip ahead.
func Parse(p []byte) ([]AdStruct, error) {
	var out []AdStruct
	r := codec.NewReader(p)
	for r.Remaining() > 0 {
		off := r.Offset()
		l, _ := r.Byte()
		if l == 0 {
			return nil, errors.Wrapf(ErrMalformed, "zero length at offset %d", off)
		}
		body, err := r.Bytes(int(l))
		if err != nil {
			return nil, errors.Wrapf(ErrMalformed, "length %d at offset %d exceeds input", l, off)
		}
		t := Type(body[0])
		dec, ok := decoders[t]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownType, "0x%02X at offset %d", uint8(t), off)
		}
		s, err := dec(body[1:])
		if err != nil {
			return nil, errors.Wrapf(err, "%s at offset %d", t, off)
		}
		out = append(out, s)
	}
	return out, nil
}

func malformed(err error) error {
	return errors.Wrap(ErrMalformed, err.Error())
}

func decodeFlags(p []byte) (AdStruct, error) {
	r := codec.NewReader(p)
	f, err := r.Byte()
	if err != nil {
		return nil, malformed(err)
	}
	if err := r.Finish(); err != nil {
		return nil, malformed(err)
	}
	return Flags(f), nil
}

func checkWidth(p []byte, w int) error {
	if len(p)%w != 0 {
		return errors.Wrapf(ErrMalformed, "%d bytes is not a multiple of %d", len(p), w)
	}
	return nil
}

func readUUID16s(p []byte) ([]ble.UUID16, error) {
	if err := checkWidth(p, 2); err != nil {
		return nil, err
	}
	r := codec.NewReader(p)
	var uu []ble.UUID16
	for r.Remaining() > 0 {
		v, _ := r.Uint16()
		uu = append(uu, ble.UUID16(v))
	}
	return uu, nil
}

func readUUID32s(p []byte) ([]ble.UUID32, error) {
	if err := checkWidth(p, 4); err != nil {
		return nil, err
	}
	r := codec.NewReader(p)
	var uu []ble.UUID32
	for r.Remaining() > 0 {
		v, _ := r.Uint32()
		uu = append(uu, ble.UUID32(v))
	}
	return uu, nil
}

func readUUID128s(p []byte) ([]ble.UUID128, error) {
	if err := checkWidth(p, 16); err != nil {
		return nil, err
	}
	var uu []ble.UUID128
	for i := 0; i < len(p); i += 16 {
		var u ble.UUID128
		copy(u[:], p[i:i+16])
		uu = append(uu, u)
	}
	return uu, nil
}

func decodeServiceUUID16(complete bool) decodeFunc {
	return func(p []byte) (AdStruct, error) {
		uu, err := readUUID16s(p)
		if err != nil {
			return nil, err
		}
		return NewServiceUUID16(complete, uu...)
	}
}

func decodeServiceUUID32(complete bool) decodeFunc {
	return func(p []byte) (AdStruct, error) {
		uu, err := readUUID32s(p)
		if err != nil {
			return nil, err
		}
		return NewServiceUUID32(complete, uu...)
	}
}

func decodeServiceUUID128(complete bool) decodeFunc {
	return func(p []byte) (AdStruct, error) {
		uu, err := readUUID128s(p)
		if err != nil {
			return nil, err
		}
		return NewServiceUUID128(complete, uu...)
	}
}

func decodeSolicitation16(p []byte) (AdStruct, error) {
	uu, err := readUUID16s(p)
	if err != nil {
		return nil, err
	}
	return NewServiceSolicitationUUID16(uu...)
}

func decodeSolicitation32(p []byte) (AdStruct, error) {
	uu, err := readUUID32s(p)
	if err != nil {
		return nil, err
	}
	return NewServiceSolicitationUUID32(uu...)
}

func decodeSolicitation128(p []byte) (AdStruct, error) {
	uu, err := readUUID128s(p)
	if err != nil {
		return nil, err
	}
	return NewServiceSolicitationUUID128(uu...)
}

func decodeServiceData16(p []byte) (AdStruct, error) {
	r := codec.NewReader(p)
	u, err := r.Uint16()
	if err != nil {
		return nil, malformed(err)
	}
	return NewServiceData16(ble.UUID16(u), r.Rest())
}

func decodeServiceData32(p []byte) (AdStruct, error) {
	r := codec.NewReader(p)
	u, err := r.Uint32()
	if err != nil {
		return nil, malformed(err)
	}
	return NewServiceData32(ble.UUID32(u), r.Rest())
}

func decodeServiceData128(p []byte) (AdStruct, error) {
	r := codec.NewReader(p)
	b, err := r.Bytes(16)
	if err != nil {
		return nil, malformed(err)
	}
	var u ble.UUID128
	copy(u[:], b)
	return NewServiceData128(u, r.Rest())
}

func decodeLocalName(complete bool) decodeFunc {
	return func(p []byte) (AdStruct, error) {
		return NewLocalName(string(p), complete)
	}
}

func decodeTxPowerLevel(p []byte) (AdStruct, error) {
	r := codec.NewReader(p)
	v, err := r.Int8()
	if err != nil {
		return nil, malformed(err)
	}
	if err := r.Finish(); err != nil {
		return nil, malformed(err)
	}
	return NewTxPowerLevel(v)
}

func decodeConnectionIntervalRange(p []byte) (AdStruct, error) {
	r := codec.NewReader(p)
	min, err := r.Uint16()
	if err != nil {
		return nil, malformed(err)
	}
	max, err := r.Uint16()
	if err != nil {
		return nil, malformed(err)
	}
	if err := r.Finish(); err != nil {
		return nil, malformed(err)
	}
	cr, err := ble.NewConnectionIntervalRange(min, max)
	if err != nil {
		return nil, err
	}
	return NewPeripheralConnectionIntervalRange(cr), nil
}

func decodeTargets(random bool) decodeFunc {
	return func(p []byte) (AdStruct, error) {
		if err := checkWidth(p, 6); err != nil {
			return nil, err
		}
		r := codec.NewReader(p)
		var aa []ble.Address
		for r.Remaining() > 0 {
			v, _ := r.Array6()
			if !random {
				aa = append(aa, ble.PublicAddress(v))
				continue
			}
			a, err := ble.NewRandomAddress(v)
			if err != nil {
				return nil, err
			}
			aa = append(aa, a)
		}
		if random {
			return NewRandomTargetAddress(aa...)
		}
		return NewPublicTargetAddress(aa...)
	}
}

func decodeAppearance(p []byte) (AdStruct, error) {
	r := codec.NewReader(p)
	v, err := r.Uint16()
	if err != nil {
		return nil, malformed(err)
	}
	if err := r.Finish(); err != nil {
		return nil, malformed(err)
	}
	return NewAppearance(assigned.Appearance(v)), nil
}

func decodeAdvertisingInterval(p []byte) (AdStruct, error) {
	r := codec.NewReader(p)
	v, err := r.Uint16()
	if err != nil {
		return nil, malformed(err)
	}
	if err := r.Finish(); err != nil {
		return nil, malformed(err)
	}
	i, err := ble.NewAdvertisingInterval(v)
	if err != nil {
		return nil, err
	}
	return NewAdvertisingInterval(i), nil
}

func decodeURI(p []byte) (AdStruct, error) {
	c, n := utf8.DecodeRune(p)
	if c == utf8.RuneError {
		return nil, errors.Wrap(ErrInvalidURI, "bad scheme code")
	}
	s := assigned.URIScheme(c)
	body := string(p[n:])
	if s == assigned.URISchemeEmpty {
		return NewURI(body)
	}
	if !utf8.ValidString(body) {
		return nil, errors.Wrap(ErrInvalidURI, "not valid UTF-8")
	}
	return URI{scheme: s, body: body}, nil
}

func decodeLESupportedFeatures(p []byte) (AdStruct, error) {
	if len(p) == 0 || len(p) > 8 {
		return nil, errors.Wrapf(ErrMalformed, "%d feature octets", len(p))
	}
	var f uint64
	for i, b := range p {
		f |= uint64(b) << (8 * uint(i))
	}
	return LESupportedFeatures{f: ble.LEFeatures(f), octets: len(p)}, nil
}

func decodeManufacturerData(p []byte) (AdStruct, error) {
	r := codec.NewReader(p)
	c, err := r.Uint16()
	if err != nil {
		return nil, malformed(err)
	}
	return NewManufacturerSpecificData(assigned.CompanyIdentifier(c), r.Rest())
}
