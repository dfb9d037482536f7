// Package network holds listener wrappers for the panel's HTTP server.
package network

import (
	"bufio"
	"net"
	"net/http"
	"sync"
)

// tlsHandshake is the record type byte that opens every TLS connection.
const tlsHandshake = 0x16

// NewHTTPSRedirectListener wraps a listener that is about to be served with
// TLS. Connections that speak plain HTTP instead get a redirect to the
// https:// form of the requested URL and are closed.
func NewHTTPSRedirectListener(l net.Listener) net.Listener {
	return &httpsRedirectListener{Listener: l}
}

type httpsRedirectListener struct {
	net.Listener
}

func (l *httpsRedirectListener) Accept() (net.Conn, error) {
	conn, err := l.Listener.Accept()
	if err != nil {
		return nil, err
	}
	return &sniffConn{Conn: conn, r: bufio.NewReader(conn)}, nil
}

type sniffConn struct {
	net.Conn
	r *bufio.Reader

	once     sync.Once
	sniffErr error
}

func (c *sniffConn) Read(b []byte) (int, error) {
	c.once.Do(func() { c.sniffErr = c.redirectPlainHTTP() })
	if c.sniffErr != nil {
		return 0, c.sniffErr
	}
	return c.r.Read(b)
}

func (c *sniffConn) redirectPlainHTTP() error {
	first, err := c.r.Peek(1)
	if err != nil {
		return err
	}
	if first[0] == tlsHandshake {
		return nil
	}

	req, err := http.ReadRequest(c.r)
	if err != nil {
		_ = c.Conn.Close()
		return err
	}
	resp := &http.Response{
		StatusCode: http.StatusPermanentRedirect,
		ProtoMajor: 1,
		ProtoMinor: 1,
		Header:     http.Header{},
	}
	resp.Header.Set("Location", "https://"+req.Host+req.URL.RequestURI())
	resp.Header.Set("Connection", "close")
	_ = resp.Write(c.Conn)
	_ = c.Conn.Close()
	return net.ErrClosed
}
