// SPDX-License-Identifier: ice License 1.0

package measurement

import (
	"net/url"

	"github.com/google/go-querystring/query"
	"github.com/pkg/errors"

	"github.com/ice-blockchain/analytics/log"
)

// Set merges fields into the hit. Keys set later override the hit's own fields.
func (c *Common) Set(fields url.Values) {
	if c.fields == nil {
		c.fields = make(url.Values, len(fields))
	}
	merge(c.fields, fields)
}

func (*Common) hit() {}

func (*PageView) Kind() HitKind    { return PageViewKind }
func (*ScreenView) Kind() HitKind  { return ScreenViewKind }
func (*Event) Kind() HitKind       { return EventKind }
func (*Exception) Kind() HitKind   { return ExceptionKind }
func (*Item) Kind() HitKind        { return ItemKind }
func (*Transaction) Kind() HitKind { return TransactionKind }
func (*Social) Kind() HitKind      { return SocialKind }
func (*Timing) Kind() HitKind      { return TimingKind }

func (h *PageView) Properties() url.Values    { return render(h, &h.Common) }
func (h *ScreenView) Properties() url.Values  { return render(h, &h.Common) }
func (h *Event) Properties() url.Values       { return render(h, &h.Common) }
func (h *Exception) Properties() url.Values   { return render(h, &h.Common) }
func (h *Item) Properties() url.Values        { return render(h, &h.Common) }
func (h *Transaction) Properties() url.Values { return render(h, &h.Common) }
func (h *Social) Properties() url.Values      { return render(h, &h.Common) }
func (h *Timing) Properties() url.Values      { return render(h, &h.Common) }

func render(hit Hit, common *Common) url.Values {
	vals := mustEncode(hit)
	vals.Set("t", string(hit.Kind()))
	merge(vals, common.fields)

	return vals
}

func mustEncode(val any) url.Values {
	vals, err := query.Values(val)
	// Never fails for the structs of this package.
	log.Panic(errors.Wrapf(err, "failed to encode %T", val))

	return vals
}

// kindOf is the single place that decides whether a hit can be sent.
// Typed nil hits and foreign types that merely embed one of ours are rejected.
func kindOf(hit Hit) (kind HitKind, ok bool) {
	switch h := hit.(type) {
	case *PageView:
		return PageViewKind, h != nil
	case *ScreenView:
		return ScreenViewKind, h != nil
	case *Event:
		return EventKind, h != nil
	case *Exception:
		return ExceptionKind, h != nil
	case *Item:
		return ItemKind, h != nil
	case *Transaction:
		return TransactionKind, h != nil
	case *Social:
		return SocialKind, h != nil
	case *Timing:
		return TimingKind, h != nil
	default:
		return "", false
	}
}

// carriesEcommerce reports whether accumulated enhanced ecommerce data may be attached to the hit kind.
// Item and transaction hits are ecommerce submissions themselves, so the protocol forbids mixing them.
func carriesEcommerce(kind HitKind) bool {
	switch kind { //nolint:exhaustive // Only the ecommerce kinds are excluded.
	case ItemKind, TransactionKind:
		return false
	default:
		return true
	}
}
