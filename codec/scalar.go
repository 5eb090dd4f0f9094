package codec

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ParseNonNegativeInteger parses an xs:nonNegativeInteger lexical value. An
// optional leading '+' and leading zeros are accepted per the XSD lexical
// space; values beyond uint64 are rejected.
func ParseNonNegativeInteger(s string) (uint64, error) {
	body := strings.TrimPrefix(s, "+")
	if body == "" || !allDigits(body) {
		return 0, fmt.Errorf("not a valid nonNegativeInteger: %q", s)
	}
	n, err := strconv.ParseUint(body, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("nonNegativeInteger out of range: %q", s)
	}
	return n, nil
}

// FormatNonNegativeInteger renders the canonical lexical form.
func FormatNonNegativeInteger(n uint64) string {
	return strconv.FormatUint(n, 10)
}

// CheckAnyURI verifies membership of the xs:anyURI lexical space. The space is
// deliberately wide; only values that cannot be interpreted as a URI reference
// at all are rejected.
func CheckAnyURI(s string) error {
	if strings.ContainsAny(s, " \t\n\r") {
		return fmt.Errorf("anyURI must not contain whitespace: %q", s)
	}
	if _, err := url.Parse(s); err != nil {
		return fmt.Errorf("not a valid anyURI: %q: %w", s, err)
	}
	return nil
}

// IsAbsoluteURL reports whether s is an absolute URL with a scheme, the
// stricter check MDTO applies to URLBestand and raadpleeglocatieOnline.
func IsAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && (u.Host != "" || u.Opaque != "")
}
