// SPDX-License-Identifier: ice License 1.0

package terror

// Public API.

type (
	// Err is an error that carries structured data about the failure, e.g. the offending input.
	Err struct {
		error
		Data map[string]any `json:"data"`
	}
)
