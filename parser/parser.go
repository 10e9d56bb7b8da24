package parser

import (
	"github.com/pkg/errors"

	"github.com/bletio/ble"
	"github.com/bletio/ble/linux/adv"
)

var EmptyOrNilPdu = errors.New("nil/empty pdu")

var keys = ble.AdvertisementMapKeys

// Parse decodes an advertising or scan response payload into a map keyed by
// ble.AdvertisementMapKeys. UUIDs and addresses are rendered as strings so
// the result can be serialized as is.
func Parse(pdu []byte) (map[string]interface{}, error) {
	if len(pdu) == 0 {
		return nil, EmptyOrNilPdu
	}
	rr, err := adv.Parse(pdu)
	if err != nil {
		return nil, err
	}

	m := make(map[string]interface{})
	for _, r := range rr {
		put(m, r)
	}
	return m, nil
}

// Merge folds src into dst. List values are appended, service data is
// joined, and manufacturer data from src has its company id stripped before
// being appended, since scan responses repeat it.
func Merge(dst, src map[string]interface{}) map[string]interface{} {
	if dst == nil {
		dst = make(map[string]interface{}, len(src))
	}
	for k, v := range src {
		switch sv := v.(type) {
		case []string:
			appendStrings(dst, k, sv...)
		case []ble.ServiceData:
			d, _ := dst[k].([]ble.ServiceData)
			dst[k] = append(d, sv...)
		case []byte:
			writeOrAppendBytes(dst, k, sv)
		default:
			dst[k] = v
		}
	}
	return dst
}

func put(m map[string]interface{}, r adv.AdStruct) {
	switch s := r.(type) {
	case adv.Flags:
		m[keys.Flags] = uint8(s)
	case adv.LocalName:
		if s.Complete() {
			m[keys.Name] = s.Name()
		} else {
			m[keys.ShortName] = s.Name()
		}
	case adv.TxPowerLevel:
		m[keys.TxPower] = s.Level()
	case adv.Appearance:
		m[keys.Appearance] = uint16(s.Appearance())
	case adv.AdvertisingInterval:
		m[keys.AdvInterval] = uint16(s.Interval())
	case adv.PeripheralConnectionIntervalRange:
		m[keys.ConnIntervalRange] = [2]uint16{s.Range().Min(), s.Range().Max()}
	case adv.LESupportedFeatures:
		m[keys.LEFeatures] = uint64(s.Features())
	case adv.URI:
		m[keys.URI] = s.String()
	case adv.ManufacturerSpecificData:
		b := []byte{uint8(s.Company()), uint8(s.Company() >> 8)}
		writeOrAppendBytes(m, keys.MFG, append(b, s.Data()...))

	case adv.ServiceUUID16:
		for _, u := range s.UUIDs() {
			appendStrings(m, keys.Services, u.String())
		}
	case adv.ServiceUUID32:
		for _, u := range s.UUIDs() {
			appendStrings(m, keys.Services, u.String())
		}
	case adv.ServiceUUID128:
		for _, u := range s.UUIDs() {
			appendStrings(m, keys.Services, u.String())
		}
	case adv.ServiceSolicitationUUID16:
		for _, u := range s.UUIDs() {
			appendStrings(m, keys.Solicited, u.String())
		}
	case adv.ServiceSolicitationUUID32:
		for _, u := range s.UUIDs() {
			appendStrings(m, keys.Solicited, u.String())
		}
	case adv.ServiceSolicitationUUID128:
		for _, u := range s.UUIDs() {
			appendStrings(m, keys.Solicited, u.String())
		}

	case adv.ServiceData16:
		appendServiceData(m, s.UUID().String(), s.Data())
	case adv.ServiceData32:
		appendServiceData(m, s.UUID().String(), s.Data())
	case adv.ServiceData128:
		appendServiceData(m, s.UUID().String(), s.Data())

	case adv.PublicTargetAddress:
		for _, a := range s.Addresses() {
			appendStrings(m, keys.PublicTargets, a.String())
		}
	case adv.RandomTargetAddress:
		for _, a := range s.Addresses() {
			appendStrings(m, keys.RandomTargets, a.String())
		}
	}
}

func appendStrings(m map[string]interface{}, key string, v ...string) {
	arr, _ := m[key].([]string)
	m[key] = append(arr, v...)
}

func appendServiceData(m map[string]interface{}, u string, data []byte) {
	arr, _ := m[keys.ServiceData].([]ble.ServiceData)
	m[keys.ServiceData] = append(arr, ble.ServiceData{UUID: u, Data: data})
}

func writeOrAppendBytes(m map[string]interface{}, key string, data []byte) {
	d, ok := m[key].([]byte)
	if !ok {
		m[key] = data
		return
	}
	if key == keys.MFG && len(data) >= 2 {
		//mfg data contains the company id again in the scan response
		data = data[2:]
	}
	m[key] = append(d, data...)
}
