// Package params is the named parameter store a package uses to hand values
// from mesh initialization to the per block routines.
//
// A Dictionary is written during setup, then frozen. After Freeze it is
// read-only and may be shared by any number of goroutines through the Reader
// interface.
package params

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrParamExists   = errors.New("parameter already exists")
	ErrParamNotFound = errors.New("parameter not found")
	ErrParamType     = errors.New("parameter has a different type")
	ErrFrozen        = errors.New("parameter store is frozen")
)

// Reader is the read-only view handed to per block routines.
type Reader interface {
	Lookup(name string) (val interface{}, ok bool)
	Keys() []string
}

type Dictionary struct {
	Label  string
	mu     sync.RWMutex
	frozen bool
	values map[string]interface{}
}

func NewDictionary(label string) *Dictionary {
	return &Dictionary{
		Label:  label,
		values: make(map[string]interface{}),
	}
}

// Add stores val under name. Each name may be written once, and only before
// the dictionary is frozen.
func Add[T any](d *Dictionary, name string, val T) (err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.frozen {
		return fmt.Errorf("%s: adding %s: %w", d.Label, name, ErrFrozen)
	}
	if _, present := d.values[name]; present {
		return fmt.Errorf("%s: %s: %w", d.Label, name, ErrParamExists)
	}
	d.values[name] = val
	return
}

// Get returns the value stored under name, which must have type T.
func Get[T any](r Reader, name string) (val T, err error) {
	v, ok := r.Lookup(name)
	if !ok {
		err = fmt.Errorf("%s: %w", name, ErrParamNotFound)
		return
	}
	if val, ok = v.(T); !ok {
		err = fmt.Errorf("%s is %T, not %T: %w", name, v, val, ErrParamType)
	}
	return
}

func (d *Dictionary) Lookup(name string) (val interface{}, ok bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	val, ok = d.values[name]
	return
}

func (d *Dictionary) Keys() (keys []string) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	keys = make([]string, 0, len(d.values))
	for key := range d.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return
}

func (d *Dictionary) Freeze() {
	d.mu.Lock()
	d.frozen = true
	d.mu.Unlock()
}

func (d *Dictionary) Frozen() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.frozen
}
