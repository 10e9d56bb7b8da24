package assigned

import "strings"

// URIScheme is a provisioned URI scheme code [Assigned Numbers, 2.7].
// In advertising data it is sent as the UTF-8 encoding of the code point.
type URIScheme uint16

// URI schemes.
const (
	URISchemeEmpty  URIScheme = 0x0001
	URISchemeAAA    URIScheme = 0x0002
	URISchemeAAAS   URIScheme = 0x0003
	URISchemeAbout  URIScheme = 0x0004
	URISchemeACAP   URIScheme = 0x0005
	URISchemeACCT   URIScheme = 0x0006
	URISchemeCAP    URIScheme = 0x0007
	URISchemeCID    URIScheme = 0x0008
	URISchemeCOAP   URIScheme = 0x0009
	URISchemeCOAPS  URIScheme = 0x000A
	URISchemeCRID   URIScheme = 0x000B
	URISchemeData   URIScheme = 0x000C
	URISchemeDAV    URIScheme = 0x000D
	URISchemeDict   URIScheme = 0x000E
	URISchemeDNS    URIScheme = 0x000F
	URISchemeFile   URIScheme = 0x0010
	URISchemeFTP    URIScheme = 0x0011
	URISchemeGeo    URIScheme = 0x0012
	URISchemeGo     URIScheme = 0x0013
	URISchemeGopher URIScheme = 0x0014
	URISchemeH323   URIScheme = 0x0015
	URISchemeHTTP   URIScheme = 0x0016
	URISchemeHTTPS  URIScheme = 0x0017
)

var uriSchemeNames = map[URIScheme]string{
	URISchemeEmpty:  "",
	URISchemeAAA:    "aaa:",
	URISchemeAAAS:   "aaas:",
	URISchemeAbout:  "about:",
	URISchemeACAP:   "acap:",
	URISchemeACCT:   "acct:",
	URISchemeCAP:    "cap:",
	URISchemeCID:    "cid:",
	URISchemeCOAP:   "coap:",
	URISchemeCOAPS:  "coaps:",
	URISchemeCRID:   "crid:",
	URISchemeData:   "data:",
	URISchemeDAV:    "dav:",
	URISchemeDict:   "dict:",
	URISchemeDNS:    "dns:",
	URISchemeFile:   "file:",
	URISchemeFTP:    "ftp:",
	URISchemeGeo:    "geo:",
	URISchemeGo:     "go:",
	URISchemeGopher: "gopher:",
	URISchemeH323:   "h323:",
	URISchemeHTTP:   "http:",
	URISchemeHTTPS:  "https:",
}

// Name returns the scheme including its trailing colon, and false for codes
// not in the table.
func (s URIScheme) Name() (string, bool) {
	n, ok := uriSchemeNames[s]
	return n, ok
}

// LookupURIScheme finds the provisioned scheme for a lowercase scheme name
// such as "https:".
func LookupURIScheme(name string) (URIScheme, bool) {
	name = strings.ToLower(name)
	for k, v := range uriSchemeNames {
		if k != URISchemeEmpty && v == name {
			return k, true
		}
	}
	return 0, false
}
