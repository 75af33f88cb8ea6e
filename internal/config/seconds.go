package config

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Seconds is a point or span on the show clock. In YAML it may be written as
// plain seconds (12.5) or as MM:SS.mmm / HH:MM:SS.mmm.
type Seconds float64

func (s *Seconds) UnmarshalYAML(value *yaml.Node) error {
	v, err := ParseSeconds(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*s = Seconds(v)
	return nil
}

// ParseSeconds converts a timestamp to seconds.
func ParseSeconds(ts string) (float64, error) {
	ts = strings.TrimSpace(ts)
	if ts == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	if !strings.Contains(ts, ":") {
		v, err := strconv.ParseFloat(ts, 64)
		if err != nil {
			return 0, fmt.Errorf("bad time %q", ts)
		}
		return v, nil
	}

	parts := strings.Split(ts, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("bad time %q; use MM:SS.mmm or HH:MM:SS.mmm", ts)
	}
	total := 0.0
	for i, p := range parts {
		last := i == len(parts)-1
		var v float64
		var err error
		if last {
			v, err = strconv.ParseFloat(p, 64)
		} else {
			var n int64
			n, err = strconv.ParseInt(p, 10, 64)
			v = float64(n)
		}
		if err != nil || v < 0 {
			return 0, fmt.Errorf("bad time %q; use MM:SS.mmm or HH:MM:SS.mmm", ts)
		}
		total = total*60 + v
	}
	return total, nil
}
