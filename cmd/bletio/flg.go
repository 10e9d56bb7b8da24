package main

import (
	"time"

	"github.com/urfave/cli"
)

var (
	flgTransport = cli.StringFlag{Name: "transport, t", Value: "hci", Usage: "link to the controller (hci / uart / tcp)"}
	flgDevice    = cli.IntFlag{Name: "device, d", Value: -1, Usage: "hciN index of the user channel socket, -1 for the first one"}
	flgPort      = cli.StringFlag{Name: "port", Value: "/dev/ttyACM0", Usage: "serial port of an H4 UART controller"}
	flgBaud      = cli.UintFlag{Name: "baud", Value: 1000000, Usage: "baud rate of an H4 UART controller"}
	flgAddr      = cli.StringFlag{Name: "addr", Value: "127.0.0.1:9000", Usage: "host:port of an H4 TCP controller"}
	flgDial      = cli.DurationFlag{Name: "dial", Value: 5 * time.Second, Usage: "H4 TCP dial timeout"}
	flgTimeout   = cli.DurationFlag{Name: "tmo", Value: 3 * time.Second, Usage: "HCI command timeout"}
	flgCache     = cli.StringFlag{Name: "cache", Usage: "capability cache file"}
	flgLogLevel  = cli.StringFlag{Name: "log", Value: "info", Usage: "log level (trace / debug / info / warn / error)"}

	flgName       = cli.StringFlag{Name: "name, n", Usage: "complete local name"}
	flgShortName  = cli.StringFlag{Name: "short", Usage: "shortened local name"}
	flgFlags      = cli.UintFlag{Name: "flags", Value: 0x06, Usage: "AD flags, 0 to omit"}
	flgUUID16     = cli.StringSliceFlag{Name: "uuid16", Usage: "16 bit service UUID (hex), repeatable"}
	flgUUID128    = cli.StringSliceFlag{Name: "uuid", Usage: "128 bit service UUID, repeatable"}
	flgTxPower    = cli.BoolFlag{Name: "txpwr", Usage: "include the TX power level read from the controller"}
	flgAppearance = cli.UintFlag{Name: "appearance", Usage: "appearance value, 0 to omit"}
	flgMfg        = cli.StringFlag{Name: "mfg", Usage: "manufacturer data as hex, company id first (little endian)"}
	flgURI        = cli.StringFlag{Name: "uri", Usage: "URI"}
	flgScan       = cli.BoolFlag{Name: "scan", Usage: "build a scan response instead of advertising data"}

	flgDuration = cli.DurationFlag{Name: "duration", Value: 10 * time.Second, Usage: "advertising duration, 0 for until interrupted"}
	flgInterval = cli.UintFlag{Name: "interval", Value: 0x00A0, Usage: "advertising interval in 0.625 ms units"}
	flgRandom   = cli.BoolFlag{Name: "random", Usage: "advertise from a freshly created static random address"}
	flgNonConn  = cli.BoolFlag{Name: "nonconn", Usage: "non-connectable advertising"}
)
