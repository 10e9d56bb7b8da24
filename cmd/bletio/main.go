package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/bletio/ble"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "bletio: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "bletio"
	app.Usage = "BLE host tool: AD and HCI event codecs, controller info and advertising"
	app.Version = "0.1.0"
	app.Action = cli.ShowAppHelp
	app.Flags = []cli.Flag{
		flgTransport,
		flgDevice,
		flgPort,
		flgBaud,
		flgAddr,
		flgDial,
		flgTimeout,
		flgCache,
		flgLogLevel,
	}

	app.Commands = []cli.Command{
		{
			Name:  "ad",
			Usage: "Encode or decode advertising payloads",
			Subcommands: []cli.Command{
				{
					Name:   "encode",
					Usage:  "Build an advertising or scan response payload and print it as hex",
					Action: adEncode,
					Flags: []cli.Flag{
						flgName, flgShortName, flgFlags, flgUUID16, flgUUID128,
						flgAppearance, flgMfg, flgURI, flgScan,
					},
				},
				{
					Name:      "decode",
					Usage:     "Decode hex payloads into JSON, later payloads merged as scan responses",
					ArgsUsage: "<hex> [<hex>]",
					Action:    adDecode,
				},
			},
		},
		{
			Name:  "evt",
			Usage: "Decode HCI event packets",
			Subcommands: []cli.Command{
				{
					Name:      "decode",
					Usage:     "Decode a hex H4 event packet into JSON",
					ArgsUsage: "<hex>",
					Action:    evtDecode,
				},
			},
		},
		{
			Name:      "replay",
			Usage:     "Decode a capture of H4 event packets, one hex packet per line",
			ArgsUsage: "<file>",
			Action:    replay,
		},
		{
			Name:   "info",
			Usage:  "Set up the controller and print its capabilities",
			Action: info,
		},
		{
			Name:    "advertise",
			Aliases: []string{"adv"},
			Usage:   "Advertise until the duration passes or the process is interrupted",
			Action:  advertise,
			Flags: []cli.Flag{
				flgName, flgFlags, flgUUID16, flgUUID128, flgTxPower, flgAppearance,
				flgMfg, flgDuration, flgInterval, flgRandom, flgNonConn,
			},
		},
	}

	app.Before = setup
	return app
}

func setup(c *cli.Context) error {
	return ble.SetLogLevel(c.String("log"))
}
