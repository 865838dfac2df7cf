// SPDX-License-Identifier: ice License 1.0

package terror

import (
	"github.com/pkg/errors"
)

func New(err error, data map[string]any) *Err {
	return &Err{error: err, Data: data}
}

// As returns the first *Err found in the chain of err, or nil.
func As(err error) *Err {
	tErr := new(Err)
	if errors.As(err, tErr) {
		return tErr
	}

	return nil
}

// Get returns the data stored under key, if any.
func (e *Err) Get(key string) (any, bool) {
	if e == nil || e.Data == nil {
		return nil, false
	}
	val, found := e.Data[key]

	return val, found
}

func (e *Err) Is(target error) bool {
	return errors.Is(target, e.error)
}

func (e *Err) Unwrap() error {
	return e.error
}

func (e *Err) As(target any) bool {
	o, ok := target.(*Err)
	if ok {
		*o = *e
	}

	return ok
}
