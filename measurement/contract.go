// SPDX-License-Identifier: ice License 1.0

package measurement

import (
	"context"
	"net/url"
	stdlibtime "time"

	"github.com/imroc/req/v3"
	"github.com/pkg/errors"
)

// Public API.

const (
	PageViewKind    HitKind = "pageview"
	ScreenViewKind  HitKind = "screenview"
	EventKind       HitKind = "event"
	ExceptionKind   HitKind = "exception"
	ItemKind        HitKind = "item"
	TransactionKind HitKind = "transaction"
	SocialKind      HitKind = "social"
	TimingKind      HitKind = "timing"
)

const (
	DetailProductAction         ProductActionType = "detail"
	ClickProductAction          ProductActionType = "click"
	AddProductAction            ProductActionType = "add"
	RemoveProductAction         ProductActionType = "remove"
	CheckoutProductAction       ProductActionType = "checkout"
	CheckoutOptionProductAction ProductActionType = "checkout_option"
	PurchaseProductAction       ProductActionType = "purchase"
	RefundProductAction         ProductActionType = "refund"

	ViewPromotionAction  PromotionActionType = "view"
	ClickPromotionAction PromotionActionType = "click"
)

var (
	ErrMissingUserAgent = errors.New("a user agent is required for the collection endpoint to accept hits")
	ErrUnsupportedHit   = errors.New("only pageview, screenview, event, transaction, item, social, exception and timing hits can be sent")
)

type (
	HitKind             string
	ProductActionType   string
	PromotionActionType string
	Client              interface {
		AddDimension(index int, value string)
		RemoveDimension(index int)
		AddMetric(index int, value string)
		RemoveMetric(index int)
		// Add accumulates enhanced ecommerce data that is attached to every following non-ecommerce hit.
		Add(hit EcommerceHit)
		// Params builds the exact parameter set Send would put on the wire, without sending it.
		Params(hit Hit) (url.Values, error)
		// Send issues exactly one GET to the collection endpoint.
		// The response is returned as is: its status code is not inspected and nothing is retried.
		Send(ctx context.Context, hit Hit) (*req.Response, error)
	}
	// Hit is a closed set: only the eight hit types of this package implement it.
	Hit interface {
		Kind() HitKind
		Set(fields url.Values)
		Properties() url.Values
		hit()
	}
	EcommerceHit interface {
		ecommerceHit()
	}
	Options struct {
		IDFA    string              `yaml:"idfa" mapstructure:"idfa"`
		ADID    string              `yaml:"adid" mapstructure:"adid"`
		BaseURL string              `yaml:"baseUrl" mapstructure:"baseUrl"`
		Timeout stdlibtime.Duration `yaml:"timeout" mapstructure:"timeout"`
	}
	// Common holds the fields every hit kind accepts.
	Common struct {
		fields         url.Values
		UserID         string `url:"uid,omitempty"`
		SessionControl string `url:"sc,omitempty"`
		NonInteraction bool   `url:"ni,omitempty,int"`
	}
	PageView struct {
		Common
		Hostname string `url:"dh,omitempty"`
		Page     string `url:"dp,omitempty"`
		Title    string `url:"dt,omitempty"`
		Location string `url:"dl,omitempty"`
	}
	ScreenView struct {
		Common
		ScreenName     string `url:"cd,omitempty"`
		AppName        string `url:"an,omitempty"`
		AppID          string `url:"aid,omitempty"`
		AppVersion     string `url:"av,omitempty"`
		AppInstallerID string `url:"aiid,omitempty"`
	}
	Event struct {
		Common
		Category string `url:"ec,omitempty"`
		Action   string `url:"ea,omitempty"`
		Label    string `url:"el,omitempty"`
		Value    int64  `url:"ev,omitempty"`
	}
	Exception struct {
		Common
		Description string `url:"exd,omitempty"`
		Fatal       bool   `url:"exf,int"`
	}
	Item struct {
		Common
		TransactionID string  `url:"ti,omitempty"`
		Name          string  `url:"in,omitempty"`
		Code          string  `url:"ic,omitempty"`
		Category      string  `url:"iv,omitempty"`
		CurrencyCode  string  `url:"cu,omitempty"`
		Price         float64 `url:"ip,omitempty"`
		Quantity      int64   `url:"iq,omitempty"`
	}
	Transaction struct {
		Common
		TransactionID string  `url:"ti,omitempty"`
		Affiliation   string  `url:"ta,omitempty"`
		CurrencyCode  string  `url:"cu,omitempty"`
		Revenue       float64 `url:"tr,omitempty"`
		Shipping      float64 `url:"ts,omitempty"`
		Tax           float64 `url:"tt,omitempty"`
	}
	Social struct {
		Common
		Network string `url:"sn,omitempty"`
		Action  string `url:"sa,omitempty"`
		Target  string `url:"st,omitempty"`
	}
	Timing struct {
		Common
		Category string `url:"utc,omitempty"`
		Variable string `url:"utv,omitempty"`
		Label    string `url:"utl,omitempty"`
		// Time is in milliseconds.
		Time int64 `url:"utt,omitempty"`
	}
	Product struct {
		CustomDimensions map[int]string `url:"-"`
		CustomMetrics    map[int]string `url:"-"`
		ID               string         `url:"id,omitempty"`
		Name             string         `url:"nm,omitempty"`
		Brand            string         `url:"br,omitempty"`
		Category         string         `url:"ca,omitempty"`
		Variant          string         `url:"va,omitempty"`
		CouponCode       string         `url:"cc,omitempty"`
		Price            float64        `url:"pr,omitempty"`
		Quantity         int64          `url:"qt,omitempty"`
		Position         int64          `url:"ps,omitempty"`
	}
	ProductAction struct {
		Action         ProductActionType `url:"pa,omitempty"`
		TransactionID  string            `url:"ti,omitempty"`
		Affiliation    string            `url:"ta,omitempty"`
		CouponCode     string            `url:"tcc,omitempty"`
		List           string            `url:"pal,omitempty"`
		CheckoutOption string            `url:"col,omitempty"`
		Revenue        float64           `url:"tr,omitempty"`
		Tax            float64           `url:"tt,omitempty"`
		Shipping       float64           `url:"ts,omitempty"`
		CheckoutStep   int64             `url:"cos,omitempty"`
	}
	Impression struct {
		ListName string  `url:"-"`
		ID       string  `url:"id,omitempty"`
		Name     string  `url:"nm,omitempty"`
		Brand    string  `url:"br,omitempty"`
		Category string  `url:"ca,omitempty"`
		Variant  string  `url:"va,omitempty"`
		Price    float64 `url:"pr,omitempty"`
		Position int64   `url:"ps,omitempty"`
	}
	Promotion struct {
		Action   PromotionActionType `url:"-"`
		ID       string              `url:"id,omitempty"`
		Name     string              `url:"nm,omitempty"`
		Creative string              `url:"cr,omitempty"`
		Position string              `url:"ps,omitempty"`
	}
	// CustomParameters is an index -> value mapping rendered as `<prefix><index>` protocol keys.
	// It is not safe for concurrent mutation.
	CustomParameters struct {
		entries map[int]string
		prefix  string
	}
	// EnhancedEcommerce accumulates products, impressions, promotions and the product action of a client.
	// It is not safe for concurrent mutation.
	EnhancedEcommerce struct {
		action          *ProductAction
		impressions     map[string][]*Impression
		promotionAction PromotionActionType
		impressionLists []string
		products        []*Product
		promotions      []*Promotion
	}
)

// Private API.

const (
	defaultBaseURL     = "https://www.google-analytics.com/collect"
	defaultVersion     = 1
	requestDeadline    = 25 * stdlibtime.Second
	cacheBusterCeiling = 100_000_000
	dataSource         = "app"
	anonymizeFlag      = "1"

	dimensionPrefix = "cd"
	metricPrefix    = "cm"
	productPrefix   = "pr"
	impressionList  = "il"
	impressionItem  = "pi"
	promotionPrefix = "promo"
)

type (
	client struct {
		http       *req.Client
		dimensions *CustomParameters
		metrics    *CustomParameters
		ecommerce  *EnhancedEcommerce
		opts       *Options
		trackingID string
		clientID   string
		userAgent  string
		version    int
	}
	config struct {
		Measurement struct {
			Options    `mapstructure:",squash"`
			TrackingID string `yaml:"trackingId" mapstructure:"trackingId"`
			ClientID   string `yaml:"clientId" mapstructure:"clientId"`
			UserAgent  string `yaml:"userAgent" mapstructure:"userAgent"`
			Version    int    `yaml:"version" mapstructure:"version"`
		} `yaml:"analytics/measurement" mapstructure:"analytics/measurement"` //nolint:tagliatelle // Nope.
	}
)
