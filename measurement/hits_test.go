// SPDX-License-Identifier: ice License 1.0

package measurement

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHitProperties(t *testing.T) {
	t.Parallel()
	for _, tt := range []struct {
		hit      Hit
		expected url.Values
	}{
		{
			hit:      &PageView{Hostname: "example.com", Page: "/home", Title: "Home"},
			expected: url.Values{"t": {"pageview"}, "dh": {"example.com"}, "dp": {"/home"}, "dt": {"Home"}},
		},
		{
			hit: &ScreenView{ScreenName: "Home", AppName: "app", AppID: "com.app", AppVersion: "1.0.0", AppInstallerID: "com.android.vending"},
			expected: url.Values{
				"t": {"screenview"}, "cd": {"Home"}, "an": {"app"}, "aid": {"com.app"}, "av": {"1.0.0"}, "aiid": {"com.android.vending"},
			},
		},
		{
			hit:      &Event{Category: "video", Action: "play", Label: "intro", Value: 42},
			expected: url.Values{"t": {"event"}, "ec": {"video"}, "ea": {"play"}, "el": {"intro"}, "ev": {"42"}},
		},
		{
			hit:      &Event{Category: "video", Action: "play"},
			expected: url.Values{"t": {"event"}, "ec": {"video"}, "ea": {"play"}},
		},
		{
			hit:      &Exception{Description: "boom", Fatal: true},
			expected: url.Values{"t": {"exception"}, "exd": {"boom"}, "exf": {"1"}},
		},
		{
			hit:      &Exception{Description: "meh"},
			expected: url.Values{"t": {"exception"}, "exd": {"meh"}, "exf": {"0"}},
		},
		{
			hit: &Item{TransactionID: "t1", Name: "socks", Code: "SKU1", Category: "clothes", CurrencyCode: "EUR", Price: 9.99, Quantity: 2},
			expected: url.Values{
				"t": {"item"}, "ti": {"t1"}, "in": {"socks"}, "ic": {"SKU1"}, "iv": {"clothes"}, "cu": {"EUR"}, "ip": {"9.99"}, "iq": {"2"},
			},
		},
		{
			hit: &Transaction{TransactionID: "t1", Affiliation: "store", CurrencyCode: "EUR", Revenue: 19.98, Shipping: 5, Tax: 1.5},
			expected: url.Values{
				"t": {"transaction"}, "ti": {"t1"}, "ta": {"store"}, "cu": {"EUR"}, "tr": {"19.98"}, "ts": {"5"}, "tt": {"1.5"},
			},
		},
		{
			hit:      &Social{Network: "facebook", Action: "like", Target: "/home"},
			expected: url.Values{"t": {"social"}, "sn": {"facebook"}, "sa": {"like"}, "st": {"/home"}},
		},
		{
			hit:      &Timing{Category: "api", Variable: "load", Label: "cold", Time: 120},
			expected: url.Values{"t": {"timing"}, "utc": {"api"}, "utv": {"load"}, "utl": {"cold"}, "utt": {"120"}},
		},
		{
			hit:      &PageView{Page: "/home", Common: Common{UserID: "u1", SessionControl: "start", NonInteraction: true}},
			expected: url.Values{"t": {"pageview"}, "dp": {"/home"}, "uid": {"u1"}, "sc": {"start"}, "ni": {"1"}},
		},
	} {
		assert.Equal(t, tt.expected, tt.hit.Properties(), "%T", tt.hit)
	}
}

func TestHitSet(t *testing.T) {
	t.Parallel()
	hit := &PageView{Page: "/home"}
	hit.Set(url.Values{"v": {"1"}, "tid": {"UA-1"}})
	hit.Set(url.Values{"tid": {"UA-2"}, "dp": {"/other"}})

	assert.Equal(t, url.Values{
		"t":   {"pageview"},
		"dp":  {"/other"},
		"v":   {"1"},
		"tid": {"UA-2"},
	}, hit.Properties())
	assert.Equal(t, "/home", hit.Page)
}

func TestKindOf(t *testing.T) {
	t.Parallel()
	for _, hit := range allHits() {
		kind, ok := kindOf(hit)
		assert.True(t, ok)
		assert.Equal(t, hit.Kind(), kind)
		assert.Equal(t, kind != ItemKind && kind != TransactionKind, carriesEcommerce(kind))
	}
	_, ok := kindOf(nil)
	assert.False(t, ok)
	_, ok = kindOf((*Timing)(nil))
	assert.False(t, ok)
	_, ok = kindOf(foreignHit{PageView: new(PageView)})
	assert.False(t, ok)
}
