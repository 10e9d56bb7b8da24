package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/bletio/ble"
	"github.com/bletio/ble/cache"
	"github.com/bletio/ble/host"
	"github.com/bletio/ble/linux/adv"
	"github.com/bletio/ble/linux/hci"
	"github.com/bletio/ble/linux/hci/cmd"
)

func transportConfig(c *cli.Context) hci.TransportConfig {
	return hci.TransportConfig{
		Kind:       hci.TransportKind(c.GlobalString("transport")),
		DeviceID:   c.GlobalInt("device"),
		SerialPort: c.GlobalString("port"),
		BaudRate:   c.GlobalUint("baud"),
		Address:    c.GlobalString("addr"),
		Timeout:    c.GlobalDuration("dial"),
	}
}

func hostOptions(c *cli.Context) []ble.Option {
	opts := []ble.Option{ble.OptCommandTimeout(c.GlobalDuration("tmo"))}
	if f := c.GlobalString("cache"); f != "" {
		opts = append(opts, ble.OptCapabilityCache(cache.New(f)))
	}
	return opts
}

// withDevice opens the configured transport and hands a set up host to fn.
func withDevice(c *cli.Context, fn func(ctx context.Context, s *host.StandbyHost) error) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	t, err := hci.OpenTransport(transportConfig(c))
	if err != nil {
		return errors.Wrap(err, "can't open transport")
	}
	defer t.Close()

	s, err := openHost(ctx, t, hostOptions(c)...)
	if err != nil {
		return err
	}
	return fn(ctx, s)
}

func openHost(ctx context.Context, t hci.Transport, opts ...ble.Option) (*host.StandbyHost, error) {
	ctl, err := hci.New(t)
	if err != nil {
		return nil, err
	}
	h, err := host.New(ctl, opts...)
	if err != nil {
		return nil, err
	}
	s, err := h.Setup(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "can't set up controller")
	}
	return s, nil
}

type controllerInfo struct {
	Information       host.DeviceInformation `json:"information"`
	FilterAcceptList  int                    `json:"filterAcceptListSize,omitempty"`
	LEFeatures        string                 `json:"leFeatures"`
	LESupported       bool                   `json:"leSupported"`
	BREDRNotSupported bool                   `json:"bredrNotSupported"`
}

func describe(ctx context.Context, s *host.StandbyHost) controllerInfo {
	ci := controllerInfo{
		Information:       s.DeviceInformation(),
		LESupported:       s.SupportedFeatures().Contains(ble.FeatureLESupportedController),
		BREDRNotSupported: s.SupportedFeatures().Contains(ble.FeatureBREDRNotSupported),
		LEFeatures:        s.SupportedLEFeatures().String(),
	}
	if s.SupportedCommands().Contains(ble.SupportedLEReadFilterAcceptListSize) {
		if n, err := s.FilterAcceptListSize(ctx); err == nil {
			ci.FilterAcceptList = n
		}
	}
	return ci
}

func info(c *cli.Context) error {
	return withDevice(c, func(ctx context.Context, s *host.StandbyHost) error {
		return printJSON(c.App.Writer, describe(ctx, s))
	})
}

func advertise(c *cli.Context) error {
	b, err := builder(c)
	if err != nil {
		return err
	}
	ad, err := b.Build()
	if err != nil {
		return errors.Wrap(err, "can't build advertising data")
	}

	p := host.DefaultAdvertisingParameters()
	iv, err := ble.NewAdvertisingInterval(uint16(c.Uint("interval")))
	if err != nil {
		return err
	}
	p.IntervalMin, p.IntervalMax = iv, iv
	if c.Bool("nonconn") {
		p.Type = cmd.AdvNonconnInd
	}

	return withDevice(c, func(ctx context.Context, s *host.StandbyHost) error {
		if d := c.Duration("duration"); d > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, d)
			defer cancel()
		}
		return chkErr(runAdvertising(ctx, s, c.Bool("random"), p, &ad))
	})
}

// runAdvertising advertises until ctx is done, then stops advertising with a
// fresh context so the controller is left idle.
func runAdvertising(ctx context.Context, s *host.StandbyHost, random bool, p host.AdvertisingParameters, ad *adv.AdvertisingData) error {
	lg := ble.GetLogger()
	if random {
		var err error
		if s, err = s.CreateRandomAddress(ctx); err != nil {
			return err
		}
		p.OwnAddressType = cmd.OwnAddressRandom
		ra, _ := s.RandomAddress()
		lg.Infof("advertising from random address %s", ra)
	} else {
		lg.Infof("advertising from public address %s", s.Address())
	}

	a, err := s.StartAdvertising(ctx, p, ad, nil)
	if err != nil {
		return err
	}
	<-ctx.Done()

	if _, err := a.StopAdvertising(context.Background()); err != nil {
		return errors.Wrap(err, "can't stop advertising")
	}
	fmt.Fprintf(os.Stderr, "advertising stopped: %v\n", ctx.Err())
	return ctx.Err()
}
