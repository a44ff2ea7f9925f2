// Package snapshot implements the flat key/value record a session is
// serialized to for persistence across process death. The record is an
// opaque string blob in the key/value store; this package owns its layout
// and the strict typed accessors used on restore.
package snapshot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/chorequest/minigames/internal/config"
	"github.com/chorequest/minigames/internal/core"
)

// ErrMalformed wraps every decode and accessor failure so restore paths can
// treat any of them as "no saved game".
var ErrMalformed = errors.New("snapshot: malformed record")

// Record is one session's persisted state as a flat string map.
type Record map[string]string

// New returns an empty record.
func New() Record {
	return make(Record)
}

// Empty reports whether the record carries no keys.
func (r Record) Empty() bool {
	return len(r) == 0
}

// Clone returns a copy sharing nothing with the receiver.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func (r Record) SetString(key, v string) {
	r[key] = v
}

func (r Record) SetInt(key string, v int) {
	r[key] = strconv.Itoa(v)
}

func (r Record) SetInt64(key string, v int64) {
	r[key] = strconv.FormatInt(v, 10)
}

func (r Record) SetBool(key string, v bool) {
	r[key] = strconv.FormatBool(v)
}

func (r Record) SetFloat(key string, v float64) {
	r[key] = strconv.FormatFloat(v, 'g', -1, 64)
}

func (r Record) SetLevel(key string, l config.Level) {
	r[key] = l.String()
}

// SetCells stores a cell list as "x,y;x,y;…", preserving order.
func (r Record) SetCells(key string, cells []core.Cell) {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = fmt.Sprintf("%d,%d", c.X, c.Y)
	}
	r[key] = strings.Join(parts, ";")
}

// SetInts stores an int list as "a,b,c", preserving order.
func (r Record) SetInts(key string, vals []int) {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.Itoa(v)
	}
	r[key] = strings.Join(parts, ",")
}

// Str returns the raw value for key.
func (r Record) Str(key string) (string, error) {
	v, ok := r[key]
	if !ok {
		return "", fmt.Errorf("%w: missing key %q", ErrMalformed, key)
	}
	return v, nil
}

// Int parses the value for key as a decimal integer.
func (r Record) Int(key string) (int, error) {
	raw, err := r.Str(key)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: key %q: %v", ErrMalformed, key, err)
	}
	return v, nil
}

// Int64 parses the value for key as a 64-bit integer.
func (r Record) Int64(key string) (int64, error) {
	raw, err := r.Str(key)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: key %q: %v", ErrMalformed, key, err)
	}
	return v, nil
}

// Bool parses the value for key as a boolean.
func (r Record) Bool(key string) (bool, error) {
	raw, err := r.Str(key)
	if err != nil {
		return false, err
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: key %q: %v", ErrMalformed, key, err)
	}
	return v, nil
}

// Float parses the value for key as a float64.
func (r Record) Float(key string) (float64, error) {
	raw, err := r.Str(key)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: key %q: %v", ErrMalformed, key, err)
	}
	return v, nil
}

// Level parses the value for key as a difficulty level.
func (r Record) Level(key string) (config.Level, error) {
	raw, err := r.Str(key)
	if err != nil {
		return config.Easy, err
	}
	l, err := config.ParseLevel(raw)
	if err != nil {
		return config.Easy, fmt.Errorf("%w: key %q: %v", ErrMalformed, key, err)
	}
	return l, nil
}

// Cells parses the value for key back into an ordered cell list.
func (r Record) Cells(key string) ([]core.Cell, error) {
	raw, err := r.Str(key)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ";")
	cells := make([]core.Cell, 0, len(parts))
	for _, p := range parts {
		xy := strings.Split(p, ",")
		if len(xy) != 2 {
			return nil, fmt.Errorf("%w: key %q: bad cell %q", ErrMalformed, key, p)
		}
		x, errX := strconv.Atoi(xy[0])
		y, errY := strconv.Atoi(xy[1])
		if errX != nil || errY != nil {
			return nil, fmt.Errorf("%w: key %q: bad cell %q", ErrMalformed, key, p)
		}
		cells = append(cells, core.Cell{X: x, Y: y})
	}
	return cells, nil
}

// Ints parses the value for key back into an ordered int list.
func (r Record) Ints(key string) ([]int, error) {
	raw, err := r.Str(key)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	vals := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%w: key %q: bad int %q", ErrMalformed, key, p)
		}
		vals = append(vals, v)
	}
	return vals, nil
}
