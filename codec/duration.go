package codec

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Duration is an xs:duration value. Components are kept separate because the
// calendar components (years, months) have no fixed length in seconds.
type Duration struct {
	Negative bool
	Years    int
	Months   int
	Days     int
	Hours    int
	Minutes  int
	Seconds  float64
}

var durationRE = regexp.MustCompile(
	`^(-)?P(?:(\d+)Y)?(?:(\d+)M)?(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?)?$`)

// ParseDuration parses an xs:duration lexical value, e.g. "P10Y" or "PT5M30S".
func ParseDuration(s string) (Duration, error) {
	m := durationRE.FindStringSubmatch(s)
	if m == nil {
		return Duration{}, fmt.Errorf("not a valid duration: %q", s)
	}
	// "P" alone, or "...T" with no time components, is not a valid duration.
	if m[2] == "" && m[3] == "" && m[4] == "" && m[5] == "" && m[6] == "" && m[7] == "" {
		return Duration{}, fmt.Errorf("not a valid duration: %q", s)
	}
	if strings.HasSuffix(s, "T") {
		return Duration{}, fmt.Errorf("not a valid duration: %q", s)
	}
	d := Duration{Negative: m[1] == "-"}
	d.Years = atoiDefault(m[2])
	d.Months = atoiDefault(m[3])
	d.Days = atoiDefault(m[4])
	d.Hours = atoiDefault(m[5])
	d.Minutes = atoiDefault(m[6])
	if m[7] != "" {
		d.Seconds, _ = strconv.ParseFloat(m[7], 64)
	}
	return d, nil
}

// String formats the duration in canonical lexical form.
func (d Duration) String() string {
	var b strings.Builder
	if d.Negative {
		b.WriteByte('-')
	}
	b.WriteByte('P')
	if d.Years > 0 {
		fmt.Fprintf(&b, "%dY", d.Years)
	}
	if d.Months > 0 {
		fmt.Fprintf(&b, "%dM", d.Months)
	}
	if d.Days > 0 {
		fmt.Fprintf(&b, "%dD", d.Days)
	}
	if d.Hours > 0 || d.Minutes > 0 || d.Seconds > 0 {
		b.WriteByte('T')
		if d.Hours > 0 {
			fmt.Fprintf(&b, "%dH", d.Hours)
		}
		if d.Minutes > 0 {
			fmt.Fprintf(&b, "%dM", d.Minutes)
		}
		if d.Seconds > 0 {
			fmt.Fprintf(&b, "%sS", strconv.FormatFloat(d.Seconds, 'f', -1, 64))
		}
	}
	if b.Len() == 1 || (d.Negative && b.Len() == 2) {
		// no components at all; canonical zero duration
		b.WriteString("T0S")
	}
	return b.String()
}

func atoiDefault(s string) int {
	if s == "" {
		return 0
	}
	n, _ := strconv.Atoi(s)
	return n
}
