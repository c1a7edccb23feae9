package resolver

import (
	"strings"
)

type refScheme int

const (
	schemeUnknown refScheme = iota
	schemeCAS
	schemeIPFS
	schemeHTTP
)

const (
	casPrefix  = "cas://"
	ipfsPrefix = "ipfs://"
)

// classifyRef works out which store a content ref lives in. Bare CIDv0
// ("Qm...") and CIDv1 ("baf...") strings are treated as ipfs refs.
func classifyRef(contentRef string) (refScheme, string) {
	ref := strings.TrimSpace(contentRef)
	switch {
	case ref == "":
		return schemeUnknown, ""
	case strings.HasPrefix(ref, casPrefix):
		return schemeCAS, strings.TrimPrefix(ref, casPrefix)
	case strings.HasPrefix(ref, ipfsPrefix):
		return schemeIPFS, strings.TrimPrefix(strings.TrimPrefix(ref, ipfsPrefix), "ipfs/")
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return schemeHTTP, ref
	case isBareCID(ref):
		return schemeIPFS, ref
	default:
		return schemeUnknown, ref
	}
}

func isBareCID(ref string) bool {
	if strings.ContainsAny(ref, "/:?# ") {
		return false
	}
	return (strings.HasPrefix(ref, "Qm") && len(ref) == 46) ||
		(strings.HasPrefix(ref, "baf") && len(ref) > 50)
}

func isHexDigest(value string) bool {
	if len(value) != 64 {
		return false
	}
	for _, c := range value {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			return false
		}
	}
	return true
}
