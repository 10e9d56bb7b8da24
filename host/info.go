package host

import (
	"github.com/bletio/ble"
	"github.com/bletio/ble/assigned"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// BufferSize is the ACL data buffer the host may fill on the controller.
type BufferSize struct {
	DataPacketLength    uint16 `json:"dataPacketLength"`
	TotalNumDataPackets uint16 `json:"totalNumDataPackets"`
	// Shared is set when LE traffic uses the BR/EDR buffers.
	Shared bool `json:"shared,omitempty"`
}

// DeviceInformation is the capability snapshot collected during setup. It
// supplies the automatic advertising fields.
type DeviceInformation struct {
	supportedCommands ble.SupportedCommands
	supportedFeatures ble.SupportedFeatures
	leFeatures        ble.LEFeatures
	leStates          ble.LEStates
	bufferSize        BufferSize
	publicAddress     ble.Address
	randomAddress     ble.Address
	hasRandomAddress  bool
	txPowerLevel      int8
	appearance        assigned.Appearance
}

// Appearance returns the configured appearance.
func (d DeviceInformation) Appearance() assigned.Appearance { return d.appearance }

// LESupportedFeatures returns the LE features of the controller.
func (d DeviceInformation) LESupportedFeatures() ble.LEFeatures { return d.leFeatures }

// TxPowerLevel returns the advertising channel TX power last read, in dBm.
func (d DeviceInformation) TxPowerLevel() int8 { return d.txPowerLevel }

// SupportedCommands returns the supported commands bit-set.
func (d DeviceInformation) SupportedCommands() ble.SupportedCommands { return d.supportedCommands }

// SupportedFeatures returns the LMP features.
func (d DeviceInformation) SupportedFeatures() ble.SupportedFeatures { return d.supportedFeatures }

// SupportedLEStates returns the supported LE states.
func (d DeviceInformation) SupportedLEStates() ble.LEStates { return d.leStates }

// BufferSize returns the negotiated ACL buffer.
func (d DeviceInformation) BufferSize() BufferSize { return d.bufferSize }

// PublicAddress returns BD_ADDR, zero when the controller can't report it.
func (d DeviceInformation) PublicAddress() ble.Address { return d.publicAddress }

// RandomAddress returns the static random address, if created.
func (d DeviceInformation) RandomAddress() (ble.Address, bool) {
	return d.randomAddress, d.hasRandomAddress
}

type deviceInformationJSON struct {
	SupportedCommands ble.SupportedCommands `json:"supportedCommands"`
	SupportedFeatures ble.SupportedFeatures `json:"supportedFeatures"`
	LEFeatures        ble.LEFeatures        `json:"leFeatures"`
	LEStates          ble.LEStates          `json:"leStates"`
	BufferSize        BufferSize            `json:"bufferSize"`
	PublicAddress     ble.Address           `json:"publicAddress"`
	RandomAddress     *ble.Address          `json:"randomAddress,omitempty"`
	TxPowerLevel      int8                  `json:"txPowerLevel"`
	Appearance        assigned.Appearance   `json:"appearance"`
}

// MarshalJSON implements json.Marshaler.
func (d DeviceInformation) MarshalJSON() ([]byte, error) {
	v := deviceInformationJSON{
		SupportedCommands: d.supportedCommands,
		SupportedFeatures: d.supportedFeatures,
		LEFeatures:        d.leFeatures,
		LEStates:          d.leStates,
		BufferSize:        d.bufferSize,
		PublicAddress:     d.publicAddress,
		TxPowerLevel:      d.txPowerLevel,
		Appearance:        d.appearance,
	}
	if d.hasRandomAddress {
		a := d.randomAddress
		v.RandomAddress = &a
	}
	return json.Marshal(v)
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *DeviceInformation) UnmarshalJSON(b []byte) error {
	var v deviceInformationJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*d = DeviceInformation{
		supportedCommands: v.SupportedCommands,
		supportedFeatures: v.SupportedFeatures,
		leFeatures:        v.LEFeatures,
		leStates:          v.LEStates,
		bufferSize:        v.BufferSize,
		publicAddress:     v.PublicAddress,
		txPowerLevel:      v.TxPowerLevel,
		appearance:        v.Appearance,
	}
	if v.RandomAddress != nil {
		d.randomAddress = *v.RandomAddress
		d.hasRandomAddress = true
	}
	return nil
}
