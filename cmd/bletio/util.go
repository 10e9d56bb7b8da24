package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/bletio/ble"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// parseHex accepts "0201 06", "02:01:06" and "0x020106".
func parseHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	s = strings.NewReplacer(" ", "", ":", "", "-", "").Replace(s)
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(ble.ErrInvalidParameter, "hex %q", s)
	}
	return b, nil
}

func hexString(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}

func printJSON(w io.Writer, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "can't marshal output")
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}

func chkErr(err error) error {
	switch errors.Cause(err) {
	case context.DeadlineExceeded:
		// Specified duration passed, which is the expected case.
		return nil
	case context.Canceled:
		fmt.Printf("\n(Canceled)\n")
		return nil
	}
	return err
}
