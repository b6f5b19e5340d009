package merge

import (
	"strconv"
	"strings"
)

// compareDotted compares two dotted version strings such as Unicode
// versions ("6.3.0" vs "10.0.0") segment by segment. Numeric segments
// compare numerically and sort before non-numeric ones; missing segments
// count as zero, so "6.3" equals "6.3.0".
func compareDotted(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := 0; i < len(as) || i < len(bs); i++ {
		var sa, sb string
		if i < len(as) {
			sa = as[i]
		}
		if i < len(bs) {
			sb = bs[i]
		}
		if c := compareSegment(sa, sb); c != 0 {
			return c
		}
	}
	return 0
}

func compareSegment(a, b string) int {
	na, aNum := segmentValue(a)
	nb, bNum := segmentValue(b)
	switch {
	case aNum && bNum:
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		}
		return 0
	case aNum:
		return -1
	case bNum:
		return 1
	}
	return strings.Compare(a, b)
}

func segmentValue(s string) (int, bool) {
	if s == "" {
		return 0, true
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// maxDotted returns the highest of the given version strings, skipping
// empties. It returns "" when every input is empty.
func maxDotted(versions []string) string {
	best := ""
	for _, v := range versions {
		if v == "" {
			continue
		}
		if best == "" || compareDotted(v, best) > 0 {
			best = v
		}
	}
	return best
}
