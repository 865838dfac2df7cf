// SPDX-License-Identifier: ice License 1.0

package measurement

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/ice-blockchain/analytics/testing" //nolint:revive // It's a BDD DSL.
)

func TestEnhancedEcommerceEmpty(t *testing.T) {
	t.Parallel()
	ecommerce := NewEnhancedEcommerce()
	assert.True(t, ecommerce.IsEmpty())
	assert.Empty(t, ecommerce.Properties())

	ecommerce.Add(nil)
	ecommerce.Add((*Product)(nil))
	assert.True(t, ecommerce.IsEmpty())
}

func TestEnhancedEcommerceProducts(t *testing.T) {
	t.Parallel()
	ecommerce := NewEnhancedEcommerce()
	product := &Product{
		ID:               "P12345",
		Name:             "Android Warhol T-Shirt",
		Brand:            "Google",
		Category:         "Apparel",
		Variant:          "Black",
		CouponCode:       "SUMMER",
		Price:            29.2,
		Quantity:         2,
		Position:         1,
		CustomDimensions: map[int]string{1: "Member"},
		CustomMetrics:    map[int]string{3: "28"},
	}
	ecommerce.Add(product)
	ecommerce.Add(&Product{ID: "P67890"})
	ecommerce.Add(&ProductAction{Action: DetailProductAction})
	ecommerce.Add(&ProductAction{Action: PurchaseProductAction, TransactionID: "T1", Revenue: 58.4, CheckoutStep: 2})
	product.Name = "changed after add"
	product.CustomDimensions[1] = "changed after add"
	product.CustomDimensions[9] = "added after add"
	product.CustomMetrics[3] = "0"

	assert.False(t, ecommerce.IsEmpty())
	assert.Equal(t, url.Values{
		"pr1id":  {"P12345"},
		"pr1nm":  {"Android Warhol T-Shirt"},
		"pr1br":  {"Google"},
		"pr1ca":  {"Apparel"},
		"pr1va":  {"Black"},
		"pr1cc":  {"SUMMER"},
		"pr1pr":  {"29.2"},
		"pr1qt":  {"2"},
		"pr1ps":  {"1"},
		"pr1cd1": {"Member"},
		"pr1cm3": {"28"},
		"pr2id":  {"P67890"},
		"pa":     {"purchase"},
		"ti":     {"T1"},
		"tr":     {"58.4"},
		"cos":    {"2"},
	}, ecommerce.Properties())
}

func TestEnhancedEcommerceImpressionsAndPromotions(t *testing.T) {
	t.Parallel()
	ecommerce := NewEnhancedEcommerce()
	GIVEN("impressions spread over two lists", func() {
		ecommerce.Add(&Impression{ListName: "Search Results", ID: "P1", Name: "one", Position: 1})
		ecommerce.Add(&Impression{ListName: "Related", ID: "P2", Price: 10})
		ecommerce.Add(&Impression{ListName: "Search Results", ID: "P3"})
		AND("two promotions, the last one clicked", func() {
			ecommerce.Add(&Promotion{ID: "PROMO_1", Name: "Summer Sale", Creative: "banner", Position: "top"})
			ecommerce.Add(&Promotion{ID: "PROMO_2", Action: ClickPromotionAction})
		})
	})
	WHEN("flattening", func() {
		props := ecommerce.Properties()
		THEN(func() {
			IT("groups impressions per list in first seen order", func() {
				AssertContainsValues(t, url.Values{
					"il1nm":    {"Search Results"},
					"il1pi1id": {"P1"},
					"il1pi1nm": {"one"},
					"il1pi1ps": {"1"},
					"il1pi2id": {"P3"},
					"il2nm":    {"Related"},
					"il2pi1id": {"P2"},
					"il2pi1pr": {"10"},
				}, props)
			})
			IT("indexes promotions and renders the promotion action", func() {
				AssertContainsValues(t, url.Values{
					"promo1id": {"PROMO_1"},
					"promo1nm": {"Summer Sale"},
					"promo1cr": {"banner"},
					"promo1ps": {"top"},
					"promo2id": {"PROMO_2"},
					"promoa":   {"click"},
				}, props)
				AssertMissingKeys(t, props, "pa", "pr1id")
			})
			AND("nothing else is rendered", func() {
				assert.Len(t, props, 8+6)
			})
		})
	})
}
