package ble

// AdvertisementMapKeys are the keys of the map view produced by the parser
// package for a decoded advertising payload.
var AdvertisementMapKeys = struct {
	Flags             string
	Name              string
	ShortName         string
	MFG               string
	Services          string
	Solicited         string
	ServiceData       string
	TxPower           string
	Appearance        string
	AdvInterval       string
	ConnIntervalRange string
	PublicTargets     string
	RandomTargets     string
	URI               string
	LEFeatures        string
}{
	Flags:             "flags",
	Name:              "name",
	ShortName:         "shortName",
	MFG:               "mfg",
	Services:          "services",
	Solicited:         "solicited",
	ServiceData:       "serviceData",
	TxPower:           "txpwr",
	Appearance:        "appearance",
	AdvInterval:       "advInterval",
	ConnIntervalRange: "connIntervalRange",
	PublicTargets:     "publicTargets",
	RandomTargets:     "randomTargets",
	URI:               "uri",
	LEFeatures:        "leFeatures",
}

// ServiceData is service data keyed by a UUID in its textual form.
type ServiceData struct {
	UUID string
	Data []byte
}
