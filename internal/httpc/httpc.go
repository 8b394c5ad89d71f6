package httpc

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/pirogoeth/concourse-http-api-resource/internal/constants"
)

type Httpc struct {
	TlsConfig *tls.Config
	Timeout   time.Duration
}

// New returns a resty.Client configured according to the receiver's TLS
// and timeout settings. Defaults: MinVersion TLS1.2 when MinVersion is
// zero, request timeout from constants when Timeout is zero.
func (h *Httpc) New() *resty.Client {
	c := resty.New()
	timeout := h.Timeout
	if timeout == 0 {
		timeout = constants.DefaultRequestTimeout
	}
	c.SetTimeout(timeout)
	cfg := h.TlsConfig
	if cfg == nil {
		return c
	}
	if cfg.MinVersion == 0 {
		cfg.MinVersion = tls.VersionTLS12
	}
	c.SetTLSClientConfig(cfg)
	return c
}

// FromVerify builds an Httpc for an ssl_verify parameter value:
// true (or absent) verifies against the system roots, false disables
// verification, and a string is inline PEM certificate material used as
// the sole trust root for the call.
func FromVerify(verify interface{}) (*Httpc, error) {
	h := &Httpc{}
	switch v := verify.(type) {
	case nil:
	case bool:
		if !v {
			h.TlsConfig = &tls.Config{InsecureSkipVerify: true} // #nosec G402 -- caller opted out via ssl_verify=false
		}
	case string:
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM([]byte(v)) {
			return nil, fmt.Errorf("ssl_verify: no usable certificates in inline material")
		}
		h.TlsConfig = &tls.Config{RootCAs: pool}
	default:
		return nil, fmt.Errorf("ssl_verify: unsupported value type %T", verify)
	}
	return h, nil
}
