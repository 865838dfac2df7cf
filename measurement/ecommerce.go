// SPDX-License-Identifier: ice License 1.0

package measurement

import (
	"maps"
	"net/url"
	"strconv"
)

func (*Product) ecommerceHit()       {}
func (*ProductAction) ecommerceHit() {}
func (*Impression) ecommerceHit()    {}
func (*Promotion) ecommerceHit()     {}

func NewEnhancedEcommerce() *EnhancedEcommerce {
	return &EnhancedEcommerce{impressions: make(map[string][]*Impression)}
}

// Add stores a copy of the hit, so later changes made by the caller are not picked up.
// A product action replaces the previous one, everything else is appended.
func (e *EnhancedEcommerce) Add(hit EcommerceHit) {
	switch h := hit.(type) {
	case *Product:
		if h != nil {
			cpy := *h
			cpy.CustomDimensions = maps.Clone(h.CustomDimensions)
			cpy.CustomMetrics = maps.Clone(h.CustomMetrics)
			e.products = append(e.products, &cpy)
		}
	case *ProductAction:
		if h != nil {
			cpy := *h
			e.action = &cpy
		}
	case *Impression:
		if h != nil {
			cpy := *h
			if _, found := e.impressions[h.ListName]; !found {
				e.impressionLists = append(e.impressionLists, h.ListName)
			}
			e.impressions[h.ListName] = append(e.impressions[h.ListName], &cpy)
		}
	case *Promotion:
		if h != nil {
			cpy := *h
			e.promotions = append(e.promotions, &cpy)
			if h.Action != "" {
				e.promotionAction = h.Action
			}
		}
	}
}

func (e *EnhancedEcommerce) IsEmpty() bool {
	return e.action == nil && len(e.products) == 0 && len(e.impressionLists) == 0 && len(e.promotions) == 0
}

// Properties flattens everything accumulated so far. Product, list, impression and promotion indexes are 1-based
// and follow insertion order.
func (e *EnhancedEcommerce) Properties() url.Values {
	vals := make(url.Values)
	if e.action != nil {
		merge(vals, mustEncode(e.action))
	}
	for ix, product := range e.products {
		prefix := productPrefix + strconv.Itoa(ix+1)
		mergePrefixed(vals, prefix, mustEncode(product))
		for index, value := range product.CustomDimensions {
			vals.Set(prefix+dimensionPrefix+strconv.Itoa(index), value)
		}
		for index, value := range product.CustomMetrics {
			vals.Set(prefix+metricPrefix+strconv.Itoa(index), value)
		}
	}
	for listIx, listName := range e.impressionLists {
		prefix := impressionList + strconv.Itoa(listIx+1)
		if listName != "" {
			vals.Set(prefix+"nm", listName)
		}
		for ix, impression := range e.impressions[listName] {
			mergePrefixed(vals, prefix+impressionItem+strconv.Itoa(ix+1), mustEncode(impression))
		}
	}
	for ix, promotion := range e.promotions {
		mergePrefixed(vals, promotionPrefix+strconv.Itoa(ix+1), mustEncode(promotion))
	}
	if e.promotionAction != "" {
		vals.Set(promotionPrefix+"a", string(e.promotionAction))
	}

	return vals
}

func (c *client) Add(hit EcommerceHit) {
	c.ecommerce.Add(hit)
}

// merge overrides keys of dst with the ones from src.
func merge(dst, src url.Values) {
	for key, vals := range src {
		dst[key] = append(make([]string, 0, len(vals)), vals...)
	}
}

func mergePrefixed(dst url.Values, prefix string, src url.Values) {
	for key, vals := range src {
		dst[prefix+key] = append(make([]string, 0, len(vals)), vals...)
	}
}
