package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/bletio/ble/linux/hci/evt"
)

type decodedEvent struct {
	Code    uint8       `json:"code"`
	Summary string      `json:"summary"`
	Params  interface{} `json:"params"`
}

func decodeEvent(s string) (*decodedEvent, error) {
	b, err := parseHex(s)
	if err != nil {
		return nil, err
	}
	e, err := evt.Parse(b)
	if err != nil {
		return nil, err
	}
	return &decodedEvent{Code: e.Code(), Summary: e.String(), Params: e}, nil
}

func evtDecode(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("expected one packet")
	}
	e, err := decodeEvent(c.Args().First())
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, e)
}

func replay(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("expected a capture file")
	}
	f, err := os.Open(c.Args().First())
	if err != nil {
		return errors.Wrap(err, "can't open capture")
	}
	defer f.Close()
	return replayEvents(f, c.App.Writer)
}

// replayEvents decodes one packet per line, skipping blank lines and lines
// starting with '#'. Bad packets are reported and counted but do not stop
// the replay.
func replayEvents(r io.Reader, w io.Writer) error {
	var n, bad int
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		n++
		e, err := decodeEvent(s)
		if err != nil {
			bad++
			fmt.Fprintf(w, "%4d: error: %v\n", line, err)
			continue
		}
		fmt.Fprintf(w, "%4d: %s\n", line, e.Summary)
	}
	if err := sc.Err(); err != nil {
		return errors.Wrap(err, "can't read capture")
	}
	if bad > 0 {
		return errors.Errorf("%d of %d packets failed to decode", bad, n)
	}
	return nil
}
