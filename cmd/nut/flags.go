package main

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// flagReader reads typed flag values and keeps the first lookup error, so
// a block of reads is checked once with err().
type flagReader struct {
	set   *pflag.FlagSet
	first error
}

func readFlags(set *pflag.FlagSet) *flagReader { return &flagReader{set: set} }

func (r *flagReader) note(name string, err error) {
	if err != nil && r.first == nil {
		r.first = fmt.Errorf("failed to get %s flag: %w", name, err)
	}
}

func (r *flagReader) err() error { return r.first }

func (r *flagReader) changed(name string) bool { return r.set.Changed(name) }

func (r *flagReader) str(name string) string {
	v, err := r.set.GetString(name)
	r.note(name, err)
	return v
}

func (r *flagReader) integer(name string) int {
	v, err := r.set.GetInt(name)
	r.note(name, err)
	return v
}

func (r *flagReader) boolean(name string) bool {
	v, err := r.set.GetBool(name)
	r.note(name, err)
	return v
}

func (r *flagReader) duration(name string) time.Duration {
	v, err := r.set.GetDuration(name)
	r.note(name, err)
	return v
}

func (r *flagReader) strings(name string) []string {
	v, err := r.set.GetStringSlice(name)
	r.note(name, err)
	return v
}

// override copies the flag into dst only when the user set it.
func override[T any](r *flagReader, name string, get func(string) T, dst *T) {
	if r.changed(name) {
		*dst = get(name)
	}
}
