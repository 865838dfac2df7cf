// SPDX-License-Identifier: ice License 1.0

package measurement

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/url"
	"os"
	"strconv"
	"strings"

	"dario.cat/mergo"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/imroc/req/v3"
	"github.com/pkg/errors"

	appcfg "github.com/ice-blockchain/analytics/config"
	"github.com/ice-blockchain/analytics/log"
	"github.com/ice-blockchain/analytics/terror"
)

// New builds the client out of the `analytics/measurement` section found under applicationYAMLKey.
// It panics if the configuration is unusable.
func New(applicationYAMLKey string) Client {
	var cfg config
	appcfg.MustLoadFromKey(applicationYAMLKey, &cfg)
	cfg.loadFromEnv(applicationYAMLKey)
	if strings.TrimSpace(cfg.Measurement.ClientID) == "" {
		cfg.Measurement.ClientID = NewClientID()
	}
	log.Panic(errors.Wrapf(cfg.validate(), "invalid analytics/measurement config for %q", applicationYAMLKey))
	cl, err := NewClient(cfg.Measurement.TrackingID, cfg.Measurement.ClientID, cfg.Measurement.Version, cfg.Measurement.UserAgent, &cfg.Measurement.Options)
	log.Panic(errors.Wrapf(err, "failed to init analytics/measurement"))

	return cl
}

// NewClient fails only when userAgent is empty, the collection endpoint drops hits without one.
// A version <= 0 means the default protocol version 1, negative versions are not valid protocol versions.
func NewClient(trackingID, clientID string, version int, userAgent string, opts *Options) (Client, error) {
	if userAgent == "" {
		return nil, errors.Wrap(ErrMissingUserAgent, "can't build analytics/measurement client")
	}
	options := new(Options)
	if opts != nil {
		*options = *opts
	}
	if err := mergo.Merge(options, Options{BaseURL: defaultBaseURL, Timeout: requestDeadline}); err != nil {
		return nil, errors.Wrapf(err, "failed to apply default options to %#v", opts)
	}
	if version <= 0 {
		version = defaultVersion
	}

	return &client{
		http: req.C().
			SetTimeout(options.Timeout).
			SetUserAgent(userAgent).
			SetJsonMarshal(json.Marshal).
			SetJsonUnmarshal(json.Unmarshal),
		dimensions: NewCustomDimensions(),
		metrics:    NewCustomMetrics(),
		ecommerce:  NewEnhancedEcommerce(),
		opts:       options,
		trackingID: trackingID,
		clientID:   clientID,
		userAgent:  userAgent,
		version:    version,
	}, nil
}

// NewClientID returns a random UUIDv4, the format the collection endpoint expects for `cid`.
func NewClientID() string {
	return uuid.NewString()
}

func (c *client) Send(ctx context.Context, hit Hit) (*req.Response, error) {
	params, err := c.Params(hit)
	if err != nil {
		return nil, errors.Wrap(err, "can't send hit")
	}
	log.Debug("sending analytics/measurement hit", "kind", hit.Kind(), "endpoint", c.opts.BaseURL)
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("User-Agent", c.userAgent).
		SetQueryString(params.Encode()).
		Get(c.opts.BaseURL)

	return resp, errors.Wrapf(err, "analytics/measurement get `%v` failed for %v hit", c.opts.BaseURL, hit.Kind())
}

// Params merges, in order: the hit, custom dimensions, custom metrics, enhanced ecommerce and the transport fields.
func (c *client) Params(hit Hit) (url.Values, error) {
	kind, ok := kindOf(hit)
	if !ok {
		return nil, errors.WithStack(terror.New(ErrUnsupportedHit, map[string]any{"type": fmt.Sprintf("%T", hit)}))
	}
	hit.Set(url.Values{
		"v":   []string{strconv.Itoa(c.version)},
		"tid": []string{c.trackingID},
		"cid": []string{c.clientID},
	})
	params := hit.Properties()
	if !c.dimensions.IsEmpty() {
		merge(params, c.dimensions.Properties())
	}
	if !c.metrics.IsEmpty() {
		merge(params, c.metrics.Properties())
	}
	if carriesEcommerce(kind) && !c.ecommerce.IsEmpty() {
		merge(params, c.ecommerce.Properties())
	}
	params.Set("z", strconv.Itoa(rand.IntN(cacheBusterCeiling))) //nolint:gosec // It's a cache buster.
	params.Set("ua", c.userAgent)
	params.Set("ds", dataSource)
	params.Set("ate", anonymizeFlag)
	if c.opts.IDFA != "" {
		params.Set("idfa", c.opts.IDFA)
	}
	if c.opts.ADID != "" {
		params.Set("adid", c.opts.ADID)
	}

	return params, nil
}

func (cfg *config) loadFromEnv(applicationYAMLKey string) {
	module := strings.ToUpper(strings.ReplaceAll(strings.ReplaceAll(applicationYAMLKey, "-", "_"), "/", "_"))
	for suffix, val := range map[string]*string{
		"TRACKING_ID": &cfg.Measurement.TrackingID,
		"CLIENT_ID":   &cfg.Measurement.ClientID,
		"USER_AGENT":  &cfg.Measurement.UserAgent,
		"BASE_URL":    &cfg.Measurement.BaseURL,
	} {
		if strings.TrimSpace(*val) != "" {
			continue
		}
		if *val = os.Getenv(module + "_MEASUREMENT_" + suffix); *val == "" {
			*val = os.Getenv("MEASUREMENT_" + suffix)
		}
	}
}

func (cfg *config) validate() error {
	var errs []error
	if strings.TrimSpace(cfg.Measurement.TrackingID) == "" {
		errs = append(errs, errors.New("trackingId is required"))
	}
	if strings.TrimSpace(cfg.Measurement.UserAgent) == "" {
		errs = append(errs, ErrMissingUserAgent)
	}

	return multierror.Append(nil, errs...).ErrorOrNil()
}
