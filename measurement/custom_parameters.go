// SPDX-License-Identifier: ice License 1.0

package measurement

import (
	"net/url"
	"strconv"
)

func NewCustomDimensions() *CustomParameters {
	return &CustomParameters{prefix: dimensionPrefix, entries: make(map[int]string)}
}

func NewCustomMetrics() *CustomParameters {
	return &CustomParameters{prefix: metricPrefix, entries: make(map[int]string)}
}

// Add overwrites whatever was stored at index. Indices are not range checked.
func (p *CustomParameters) Add(index int, value string) {
	p.entries[index] = value
}

func (p *CustomParameters) Remove(index int) {
	delete(p.entries, index)
}

func (p *CustomParameters) IsEmpty() bool {
	return len(p.entries) == 0
}

func (p *CustomParameters) Properties() url.Values {
	vals := make(url.Values, len(p.entries))
	for index, value := range p.entries {
		vals.Set(p.prefix+strconv.Itoa(index), value)
	}

	return vals
}

func (c *client) AddDimension(index int, value string) {
	c.dimensions.Add(index, value)
}

func (c *client) RemoveDimension(index int) {
	c.dimensions.Remove(index)
}

func (c *client) AddMetric(index int, value string) {
	c.metrics.Add(index, value)
}

func (c *client) RemoveMetric(index int) {
	c.metrics.Remove(index)
}
