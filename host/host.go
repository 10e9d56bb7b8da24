// Package host drives a controller through its life cycle. Each state is a
// distinct type: InitialHost, StandbyHost and AdvertisingHost. A successful
// transition consumes the receiver, and any later call on it fails with
// ErrHostConsumed. A failed transition leaves the receiver usable.
package host

import (
	"context"
	"sync"
	"time"

	"github.com/bletio/ble"
	"github.com/bletio/ble/assigned"
	"github.com/bletio/ble/linux/hci/cmd"
	"github.com/pkg/errors"
)

// Errors.
var (
	ErrHostConsumed                = errors.New("host already transitioned to another state")
	ErrNonLECapableController      = errors.New("controller does not support LE")
	ErrNoBufferSize                = errors.New("controller reports no usable ACL buffer size")
	ErrRandomAddressAlreadyCreated = errors.New("random address already created")
	ErrRandomAddressRequired       = errors.New("no random address created")
	ErrRandomAddressRetries        = errors.New("no valid static random address after retries")
)

// Defaults applied during setup.
const (
	DefaultEventMask            uint64 = 0x3dbff807fffbffff
	DefaultLEEventMask          uint64 = 0x000000000000001F
	DefaultRandomAddressRetries        = 8
)

// Controller runs one command and decodes its return parameters into r.
// *hci.HCI implements it.
type Controller interface {
	Request(ctx context.Context, c cmd.Command, r cmd.CommandRP) error
}

type session struct {
	ctl   Controller
	cfg   config
	log   ble.Logger
	info  DeviceInformation
	fatal error

	// mu serializes state methods. gen counts transitions; a state value
	// is live only while its gen matches.
	mu  sync.Mutex
	gen uint64
}

func (s *session) request(ctx context.Context, c cmd.Command, r cmd.CommandRP) error {
	if err := s.ctl.Request(ctx, c, r); err != nil {
		return err
	}
	s.log.Debugf("%s: ok", c)
	return nil
}

func (s *session) supports(c ble.SupportedCommand) bool {
	return s.info.supportedCommands.Contains(c)
}

// store saves the capability snapshot when a cache is configured. Cache
// failures are logged only.
func (s *session) store() {
	if s.cfg.cache == nil {
		return
	}
	if err := s.cfg.cache.Store(s.info.publicAddress, s.info, true); err != nil {
		s.log.Warnf("can't store capabilities of %s: %v", s.info.publicAddress, err)
	}
}

type config struct {
	ctl           Controller
	log           ble.Logger
	appearance    assigned.Appearance
	eventMask     uint64
	leEventMask   uint64
	cache         ble.CapabilityCache
	randomRetries int
}

func (c *config) SetCommandTimeout(d time.Duration) error {
	if t, ok := c.ctl.(interface{ SetCommandTimeout(time.Duration) error }); ok {
		return t.SetCommandTimeout(d)
	}
	return nil
}

func (c *config) SetLogger(l ble.Logger) error {
	if l == nil {
		return errors.Wrap(ble.ErrInvalidParameter, "nil logger")
	}
	c.log = l.ChildLogger(map[string]interface{}{"pkg": "host"})
	if t, ok := c.ctl.(interface{ SetLogger(ble.Logger) error }); ok {
		return t.SetLogger(l)
	}
	return nil
}

func (c *config) SetAppearance(a assigned.Appearance) error {
	c.appearance = a
	return nil
}

func (c *config) SetEventMask(m uint64) error {
	c.eventMask = m
	return nil
}

func (c *config) SetLEEventMask(m uint64) error {
	c.leEventMask = m
	return nil
}

func (c *config) SetCapabilityCache(cc ble.CapabilityCache) error {
	c.cache = cc
	return nil
}

func (c *config) SetRandomAddressRetries(n int) error {
	if n < 1 {
		return errors.Wrapf(ble.ErrInvalidParameter, "random address retries %d", n)
	}
	c.randomRetries = n
	return nil
}

// New returns a host that has not talked to the controller yet.
func New(ctl Controller, opts ...ble.Option) (*InitialHost, error) {
	if ctl == nil {
		return nil, errors.New("nil controller")
	}
	cfg := config{
		ctl:           ctl,
		log:           ble.GetLogger().ChildLogger(map[string]interface{}{"pkg": "host"}),
		appearance:    assigned.AppearanceUnknown,
		eventMask:     DefaultEventMask,
		leEventMask:   DefaultLEEventMask,
		randomRetries: DefaultRandomAddressRetries,
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, errors.Wrap(err, "can't set options")
		}
	}

	s := &session{ctl: ctl, cfg: cfg, log: cfg.log}
	s.info.appearance = cfg.appearance
	return &InitialHost{state{s: s}}, nil
}

// state holds the accessors shared by every host state. Copies of a state
// value share its fate: once any of them transitions, all of them are
// consumed.
type state struct {
	s   *session
	gen uint64
}

// enter locks the session for the duration of a state method. The caller
// must call release.
func (st *state) enter() (s *session, release func(), err error) {
	if st.s == nil {
		return nil, nil, ErrHostConsumed
	}
	st.s.mu.Lock()
	if st.gen != st.s.gen {
		st.s.mu.Unlock()
		return nil, nil, ErrHostConsumed
	}
	return st.s, st.s.mu.Unlock, nil
}

// consume hands the session over to the next state. It must be called
// between enter and release.
func (st *state) consume() state {
	s := st.s
	s.gen++
	st.s = nil
	return state{s: s, gen: s.gen}
}

// Consumed reports whether the value was used up by a transition.
func (st *state) Consumed() bool {
	_, ok := st.snapshot()
	return !ok
}

func (st *state) snapshot() (DeviceInformation, bool) {
	if st.s == nil {
		return DeviceInformation{}, false
	}
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	if st.gen != st.s.gen {
		return DeviceInformation{}, false
	}
	return st.s.info, true
}

func (st *state) info() DeviceInformation {
	info, _ := st.snapshot()
	return info
}

// Address returns the public device address.
func (st *state) Address() ble.Address { return st.info().PublicAddress() }

// RandomAddress returns the static random address, if one was created.
func (st *state) RandomAddress() (ble.Address, bool) { return st.info().RandomAddress() }

// SupportedCommands returns the commands the controller reported.
func (st *state) SupportedCommands() ble.SupportedCommands { return st.info().SupportedCommands() }

// SupportedFeatures returns the LMP features the controller reported.
func (st *state) SupportedFeatures() ble.SupportedFeatures { return st.info().SupportedFeatures() }

// SupportedLEFeatures returns the LE features the controller reported.
func (st *state) SupportedLEFeatures() ble.LEFeatures { return st.info().LESupportedFeatures() }

// SupportedLEStates returns the LE state combinations the controller reported.
func (st *state) SupportedLEStates() ble.LEStates { return st.info().SupportedLEStates() }

// DeviceInformation returns a copy of the capability snapshot.
func (st *state) DeviceInformation() DeviceInformation { return st.info() }

// InitialHost has not been set up yet.
type InitialHost struct {
	state
}

// StandbyHost is set up and idle.
type StandbyHost struct {
	state
}

// AdvertisingHost has advertising enabled.
type AdvertisingHost struct {
	state
}
