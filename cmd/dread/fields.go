package main

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/h0rv/dread/internal/domain"
)

// field binds one string flag to one member of a patch type P.
type field[P any] struct {
	name  string
	usage string
	def   string // applied on create when the flag is not given
	set   func(p *P, v string) error
}

func textField[P any](name, usage string, assign func(*P, string)) field[P] {
	return field[P]{
		name:  name,
		usage: usage,
		set: func(p *P, v string) error {
			assign(p, v)
			return nil
		},
	}
}

func enumField[P any, E ~string](name, usage string, values []E, def E, assign func(*P, E)) field[P] {
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = string(v)
	}
	return field[P]{
		name:  name,
		usage: fmt.Sprintf("%s (%s)", usage, strings.Join(names, ", ")),
		def:   string(def),
		set: func(p *P, v string) error {
			if !slices.Contains(values, E(v)) {
				return fmt.Errorf("invalid --%s %q (want one of %s)", name, v, strings.Join(names, ", "))
			}
			assign(p, E(v))
			return nil
		},
	}
}

// dateField accepts YYYY-MM-DD or an empty string, which clears the date.
func dateField[P any](name, usage string, assign func(*P, string)) field[P] {
	return field[P]{
		name:  name,
		usage: usage + " (YYYY-MM-DD, empty to clear)",
		set: func(p *P, v string) error {
			if v != "" {
				if _, ok := domain.ParseDate(v); !ok {
					return fmt.Errorf("invalid --%s %q (want YYYY-MM-DD)", name, v)
				}
			}
			assign(p, v)
			return nil
		},
	}
}

func boolField[P any](name, usage string, assign func(*P, bool)) field[P] {
	return field[P]{
		name:  name,
		usage: usage + " (true or false)",
		set: func(p *P, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid --%s %q (want true or false)", name, v)
			}
			assign(p, b)
			return nil
		},
	}
}

func addFieldFlags[P any](cmd *cobra.Command, fields []field[P]) {
	for _, f := range fields {
		cmd.Flags().String(f.name, "", f.usage)
	}
}

// applyFields copies every changed flag into p. With defaults set, fields
// whose flag was not given receive their default value.
func applyFields[P any](cmd *cobra.Command, fields []field[P], p *P, defaults bool) error {
	for _, f := range fields {
		if !cmd.Flags().Changed(f.name) {
			if defaults && f.def != "" {
				if err := f.set(p, f.def); err != nil {
					return err
				}
			}
			continue
		}
		v, err := cmd.Flags().GetString(f.name)
		if err != nil {
			return err
		}
		if err := f.set(p, v); err != nil {
			return err
		}
	}
	return nil
}
