// SPDX-License-Identifier: ice License 1.0

package testing

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func GIVEN(_ string, logic func()) {
	logic()
}

func WHEN(_ string, logic func()) {
	logic()
}

func THEN(logic func()) {
	logic()
}

func IT(_ string, logic func()) {
	logic()
}

func AND(_ string, logic func()) {
	logic()
}

// AssertContainsValues checks that every expected key is present in actual with exactly the expected values.
// Keys not mentioned in expected are ignored.
func AssertContainsValues(tb testing.TB, expected, actual url.Values) {
	tb.Helper()
	for key, vals := range expected {
		if assert.Contains(tb, actual, key) {
			assert.Equal(tb, vals, actual[key], "values of %q", key)
		}
	}
}

// AssertMissingKeys checks that none of the keys is present in actual.
func AssertMissingKeys(tb testing.TB, actual url.Values, keys ...string) {
	tb.Helper()
	for _, key := range keys {
		assert.NotContains(tb, actual, key)
	}
}
