package config

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
)

type float32Value float32

func (f *float32Value) Set(s string) error {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return err
	}
	*f = float32Value(v)
	return nil
}

func (f *float32Value) String() string {
	return strconv.FormatFloat(float64(*f), 'g', -1, 32)
}

// Float32Var defines a float32 flag on fs.
func Float32Var(fs *flag.FlagSet, p *float32, name string, value float32, usage string) {
	*p = value
	fs.Var((*float32Value)(p), name, usage)
}

type weightsValue [4]float32

func (w *weightsValue) Set(s string) error {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return fmt.Errorf("want 4 comma-separated weights, got %d", len(parts))
	}
	var out weightsValue
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
		if err != nil {
			return fmt.Errorf("weight %d: %w", i, err)
		}
		out[i] = float32(v)
	}
	*w = out
	return nil
}

func (w *weightsValue) String() string {
	if w == nil {
		return ""
	}
	s := make([]string, len(w))
	for i, v := range w {
		s[i] = strconv.FormatFloat(float64(v), 'g', -1, 32)
	}
	return strings.Join(s, ",")
}

// WeightsVar defines a flag on fs that takes four comma-separated octave
// weights, e.g. "1,2,4,8".
func WeightsVar(fs *flag.FlagSet, p *[4]float32, name string, usage string) {
	fs.Var((*weightsValue)(p), name, usage)
}

// ExplicitFlags returns the names of the flags that were set on fs.
func ExplicitFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}
