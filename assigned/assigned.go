// Package assigned holds the small subset of Bluetooth assigned numbers the
// host engine refers to by name. Every type converts to and from its integer
// value, so values missing here can still be used.
package assigned

import "fmt"

// CompanyIdentifier is a Bluetooth SIG company identifier.
type CompanyIdentifier uint16

// Company identifiers.
const (
	CompanyEricsson        CompanyIdentifier = 0x0000
	CompanyNokia           CompanyIdentifier = 0x0001
	CompanyIntel           CompanyIdentifier = 0x0002
	CompanyIBM             CompanyIdentifier = 0x0003
	CompanyToshiba         CompanyIdentifier = 0x0004
	CompanyMicrosoft       CompanyIdentifier = 0x0006
	CompanyNordic          CompanyIdentifier = 0x0059
	CompanyAppleInc        CompanyIdentifier = 0x004C
	CompanyGoogle          CompanyIdentifier = 0x00E0
	CompanyRaspberryPi     CompanyIdentifier = 0x0F11
	CompanyTestingReserved CompanyIdentifier = 0xFFFF
)

var companyNames = map[CompanyIdentifier]string{
	CompanyEricsson:        "Ericsson AB",
	CompanyNokia:           "Nokia Mobile Phones",
	CompanyIntel:           "Intel Corp.",
	CompanyIBM:             "IBM Corp.",
	CompanyToshiba:         "Toshiba Corp.",
	CompanyMicrosoft:       "Microsoft",
	CompanyNordic:          "Nordic Semiconductor ASA",
	CompanyAppleInc:        "Apple, Inc.",
	CompanyGoogle:          "Google",
	CompanyRaspberryPi:     "Raspberry Pi Ltd",
	CompanyTestingReserved: "Reserved for testing",
}

func (c CompanyIdentifier) String() string {
	if n, ok := companyNames[c]; ok {
		return n
	}
	return fmt.Sprintf("Company(0x%04X)", uint16(c))
}

// Appearance is the external appearance of a device [Assigned Numbers, 2.6].
type Appearance uint16

// Appearance values.
const (
	AppearanceUnknown             Appearance = 0x0000
	AppearanceGenericPhone        Appearance = 0x0040
	AppearanceGenericComputer     Appearance = 0x0080
	AppearanceGenericWatch        Appearance = 0x00C0
	AppearanceGenericClock        Appearance = 0x0100
	AppearanceGenericDisplay      Appearance = 0x0140
	AppearanceGenericTag          Appearance = 0x0200
	AppearanceGenericKeyring      Appearance = 0x0240
	AppearanceGenericThermometer  Appearance = 0x0300
	AppearanceGenericHeartRate    Appearance = 0x0340
	AppearanceGenericHID          Appearance = 0x03C0
	AppearanceKeyboard            Appearance = 0x03C1
	AppearanceMouse               Appearance = 0x03C2
	AppearanceGenericSensor       Appearance = 0x0540
	AppearanceGenericLightFixture Appearance = 0x05C0
)

// Category returns the upper ten bits of the appearance.
func (a Appearance) Category() uint16 { return uint16(a) >> 6 }

// SubCategory returns the lower six bits of the appearance.
func (a Appearance) SubCategory() uint8 { return uint8(a) & 0x3F }

// ServiceUUID16 is a 16 bit SIG assigned service UUID.
type ServiceUUID16 uint16

// Service UUIDs.
const (
	ServiceGenericAccess      ServiceUUID16 = 0x1800
	ServiceGenericAttribute   ServiceUUID16 = 0x1801
	ServiceImmediateAlert     ServiceUUID16 = 0x1802
	ServiceLinkLoss           ServiceUUID16 = 0x1803
	ServiceTxPower            ServiceUUID16 = 0x1804
	ServiceCurrentTime        ServiceUUID16 = 0x1805
	ServiceHealthThermometer  ServiceUUID16 = 0x1809
	ServiceDeviceInformation  ServiceUUID16 = 0x180A
	ServiceHeartRate          ServiceUUID16 = 0x180D
	ServiceBattery            ServiceUUID16 = 0x180F
	ServiceHumanInterface     ServiceUUID16 = 0x1812
	ServiceEnvironmentSensing ServiceUUID16 = 0x181A
)
