package main

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/bletio/ble"
	"github.com/bletio/ble/assigned"
	"github.com/bletio/ble/linux/adv"
	"github.com/bletio/ble/parser"
)

func adEncode(c *cli.Context) error {
	b, err := builder(c)
	if err != nil {
		return err
	}

	var enc interface{ Bytes() ([]byte, error) }
	if c.Bool("scan") {
		enc, err = b.BuildScanResponse()
	} else {
		enc, err = b.Build()
	}
	if err != nil {
		return errors.Wrap(err, "can't build payload")
	}
	p, err := enc.Bytes()
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%s\n", hexString(p))
	return nil
}

func adDecode(c *cli.Context) error {
	if !c.Args().Present() {
		return errors.New("missing payload")
	}
	m, err := decodeAD(c.Args()...)
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, m)
}

// decodeAD parses an advertising payload followed by any scan responses and
// merges them into one map view.
func decodeAD(payloads ...string) (map[string]interface{}, error) {
	var m map[string]interface{}
	for i, s := range payloads {
		b, err := parseHex(s)
		if err != nil {
			return nil, errors.Wrapf(err, "payload %d", i)
		}
		pm, err := parser.Parse(b)
		if err != nil {
			return nil, errors.Wrapf(err, "payload %d", i)
		}
		m = parser.Merge(m, pm)
	}
	return m, nil
}

// builder collects the payload flags shared by "ad encode" and "advertise".
func builder(c *cli.Context) (*adv.Builder, error) {
	b := adv.NewBuilder()
	if f := c.Uint("flags"); f != 0 {
		b.WithFlags(adv.Flags(f))
	}
	if s := c.String("name"); s != "" {
		b.WithLocalName(s, true)
	}
	if s := c.String("short"); s != "" {
		b.WithLocalName(s, false)
	}

	var u16 []ble.UUID16
	for _, s := range c.StringSlice("uuid16") {
		v, err := strconv.ParseUint(s, 16, 16)
		if err != nil {
			return nil, errors.Wrapf(ble.ErrInvalidParameter, "uuid16 %q", s)
		}
		u16 = append(u16, ble.UUID16(v))
	}
	if len(u16) > 0 {
		b.WithServiceUUID16(true, u16...)
	}

	var u128 []ble.UUID128
	for _, s := range c.StringSlice("uuid") {
		u, err := ble.ParseUUID128(s)
		if err != nil {
			return nil, err
		}
		u128 = append(u128, u)
	}
	if len(u128) > 0 {
		b.WithServiceUUID128(true, u128...)
	}

	if c.Bool("txpwr") {
		b.WithTxPowerLevelAuto()
	}
	if a := c.Uint("appearance"); a != 0 {
		b.WithAppearance(assigned.Appearance(a))
	}
	if s := c.String("mfg"); s != "" {
		p, err := parseHex(s)
		if err != nil {
			return nil, err
		}
		if len(p) < 2 {
			return nil, errors.Wrap(ble.ErrInvalidParameter, "mfg needs a company id")
		}
		id := assigned.CompanyIdentifier(uint16(p[0]) | uint16(p[1])<<8)
		b.WithManufacturerSpecificData(id, p[2:])
	}
	if s := c.String("uri"); s != "" {
		b.WithURI(s)
	}
	return b, nil
}
