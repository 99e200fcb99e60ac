package server

import (
	"hash/fnv"
	"io"
	"net"
	"net/http"
	"time"
)

// antidos paces requests per remote host. Hosts are spread over a fixed set
// of buckets, each admitting one request per tick.
type antidos struct {
	buckets []*time.Ticker
}

func newAntidos(buckets int, period time.Duration) *antidos {
	b := make([]*time.Ticker, buckets)
	for i := range buckets {
		b[i] = time.NewTicker(period)
	}

	return &antidos{
		buckets: b,
	}
}

func (a *antidos) bucket(remoteAddr string) int {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return 0
	}
	h := fnv.New64()
	io.WriteString(h, host)
	return int(h.Sum64() % uint64(len(a.buckets)))
}

func (a *antidos) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-a.buckets[a.bucket(r.RemoteAddr)].C:
		case <-r.Context().Done():
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (a *antidos) stop() {
	for _, t := range a.buckets {
		t.Stop()
	}
}
