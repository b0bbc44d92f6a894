package dispatcher

import (
	"crypto/tls"
	"sync/atomic"
	"time"

	"github.com/valyala/fasthttp"
)

// HTTPPool round-robins a small set of keep-alive fasthttp clients so a burst
// of punishment requests does not serialize on one connection.
type HTTPPool struct {
	clients []*fasthttp.Client
	index   uint32
}

func NewHTTPPool(size int) *HTTPPool {
	if size <= 0 {
		size = 4
	}

	tlsConfig := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		ClientSessionCache: tls.NewLRUClientSessionCache(64),
	}

	clients := make([]*fasthttp.Client, size)
	for i := range clients {
		clients[i] = &fasthttp.Client{
			MaxConnsPerHost:     128,
			MaxIdleConnDuration: 90 * time.Second,
			ReadTimeout:         5 * time.Second,
			WriteTimeout:        5 * time.Second,
			TLSConfig:           tlsConfig,
		}
	}

	return &HTTPPool{clients: clients}
}

func (hp *HTTPPool) GetClient() *fasthttp.Client {
	i := atomic.AddUint32(&hp.index, 1)
	return hp.clients[int(i)%len(hp.clients)]
}

// Warmup primes TLS sessions against the API host so the first real
// punishment does not pay the handshake.
func (hp *HTTPPool) Warmup(baseURL string) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(baseURL + "/gateway")
	req.Header.SetMethod(fasthttp.MethodGet)

	for _, c := range hp.clients {
		_ = c.DoTimeout(req, resp, 2*time.Second)
	}
}
