package ble

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// SupportedCommand names one bit of the Supported_Commands bit-set as
// octet*8 + bit [Vol 4, Part E, 6.27].
type SupportedCommand uint16

// Supported command bits used by the host.
const (
	SupportedSetEventMask                          SupportedCommand = 5*8 + 6
	SupportedReset                                 SupportedCommand = 5*8 + 7
	SupportedReadLocalVersionInformation           SupportedCommand = 14*8 + 3
	SupportedReadLocalSupportedFeatures            SupportedCommand = 14*8 + 5
	SupportedReadBufferSize                        SupportedCommand = 14*8 + 7
	SupportedReadBDADDR                            SupportedCommand = 15*8 + 1
	SupportedLESetEventMask                        SupportedCommand = 25*8 + 0
	SupportedLEReadBufferSize                      SupportedCommand = 25*8 + 1
	SupportedLEReadLocalSupportedFeatures          SupportedCommand = 25*8 + 2
	SupportedLESetRandomAddress                    SupportedCommand = 25*8 + 4
	SupportedLESetAdvertisingParameters            SupportedCommand = 25*8 + 5
	SupportedLEReadAdvertisingPhysicalChannelTxPwr SupportedCommand = 25*8 + 6
	SupportedLESetAdvertisingData                  SupportedCommand = 25*8 + 7
	SupportedLESetScanResponseData                 SupportedCommand = 26*8 + 0
	SupportedLESetAdvertisingEnable                SupportedCommand = 26*8 + 1
	SupportedLEReadFilterAcceptListSize            SupportedCommand = 26*8 + 6
	SupportedLEClearFilterAcceptList               SupportedCommand = 26*8 + 7
	SupportedLEAddDeviceToFilterAcceptList         SupportedCommand = 27*8 + 0
	SupportedLERemoveDeviceFromFilterAcceptList    SupportedCommand = 27*8 + 1
	SupportedLERand                                SupportedCommand = 27*8 + 7
	SupportedLEReadSupportedStates                 SupportedCommand = 28*8 + 3
)

// SupportedCommands is the 64 octet bit-set returned by Read Local Supported
// Commands. Bits the host has no name for are kept as read.
type SupportedCommands [64]byte

// Contains reports whether the bit for c is set.
func (s SupportedCommands) Contains(c SupportedCommand) bool {
	o, b := int(c)/8, uint(c)%8
	if o >= len(s) {
		return false
	}
	return s[o]&(1<<b) != 0
}

// With returns s with the bits in cc set.
func (s SupportedCommands) With(cc ...SupportedCommand) SupportedCommands {
	for _, c := range cc {
		if o := int(c) / 8; o < len(s) {
			s[o] |= 1 << (uint(c) % 8)
		}
	}
	return s
}

// Union returns the bitwise or of s and o.
func (s SupportedCommands) Union(o SupportedCommands) SupportedCommands {
	for i := range s {
		s[i] |= o[i]
	}
	return s
}

// MarshalText renders the set as hex.
func (s SupportedCommands) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(s[:])), nil
}

// UnmarshalText parses the hex form.
func (s *SupportedCommands) UnmarshalText(text []byte) error {
	b, err := hex.DecodeString(string(text))
	if err != nil || len(b) != len(s) {
		return errors.Wrapf(ErrInvalidParameter, "supported commands %q", text)
	}
	copy(s[:], b)
	return nil
}

// SupportedFeatures is the LMP features page 0 bit-set.
type SupportedFeatures uint64

// LMP feature bits.
const (
	FeatureBREDRNotSupported             SupportedFeatures = 1 << 37
	FeatureLESupportedController         SupportedFeatures = 1 << 38
	FeatureSimultaneousLEBREDRController SupportedFeatures = 1 << 49
)

// Contains reports whether every bit of f is set in s.
func (s SupportedFeatures) Contains(f SupportedFeatures) bool { return s&f == f }

// Union returns s | o.
func (s SupportedFeatures) Union(o SupportedFeatures) SupportedFeatures { return s | o }

func (s SupportedFeatures) String() string { return fmt.Sprintf("0x%016X", uint64(s)) }

// LEFeatures is the LE features page 0 bit-set.
type LEFeatures uint64

// LE feature bits.
const (
	LEFeatureEncryption                      LEFeatures = 1 << 0
	LEFeatureConnectionParametersRequest     LEFeatures = 1 << 1
	LEFeatureExtendedRejectIndication        LEFeatures = 1 << 2
	LEFeaturePeripheralInitiatedFeaturesExch LEFeatures = 1 << 3
	LEFeaturePing                            LEFeatures = 1 << 4
	LEFeatureDataPacketLengthExtension       LEFeatures = 1 << 5
	LEFeatureLLPrivacy                       LEFeatures = 1 << 6
	LEFeatureExtendedScanningFilterPolicies  LEFeatures = 1 << 7
	LEFeature2MPHY                           LEFeatures = 1 << 8
	LEFeatureStableModulationIndexTx         LEFeatures = 1 << 9
	LEFeatureStableModulationIndexRx         LEFeatures = 1 << 10
	LEFeatureCodedPHY                        LEFeatures = 1 << 11
	LEFeatureExtendedAdvertising             LEFeatures = 1 << 12
	LEFeaturePeriodicAdvertising             LEFeatures = 1 << 13
	LEFeatureChannelSelectionAlgorithm2      LEFeatures = 1 << 14
	LEFeaturePowerClass1                     LEFeatures = 1 << 15
)

var leFeatureNames = []string{
	"encryption", "conn-params-request", "extended-reject", "peripheral-feature-exchange",
	"ping", "data-length-extension", "ll-privacy", "extended-scan-filter",
	"2m-phy", "stable-mod-tx", "stable-mod-rx", "coded-phy",
	"extended-advertising", "periodic-advertising", "csa2", "power-class-1",
}

// Contains reports whether every bit of f is set in s.
func (s LEFeatures) Contains(f LEFeatures) bool { return s&f == f }

// Union returns s | o.
func (s LEFeatures) Union(o LEFeatures) LEFeatures { return s | o }

func (s LEFeatures) String() string {
	var n []string
	for i, name := range leFeatureNames {
		if s&(1<<uint(i)) != 0 {
			n = append(n, name)
		}
	}
	if rest := s &^ (1<<uint(len(leFeatureNames)) - 1); rest != 0 {
		n = append(n, fmt.Sprintf("0x%X", uint64(rest)))
	}
	return "[" + strings.Join(n, " ") + "]"
}

// LEStates is the LE supported states bit-set. The host does not interpret it.
type LEStates uint64

func (s LEStates) String() string { return fmt.Sprintf("0x%016X", uint64(s)) }
