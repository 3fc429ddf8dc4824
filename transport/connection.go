// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"errors"
	"io"
	"net"
	"sync"
	"syscall"
)

// rawConn is the subset of syscall.RawConn connection.go needs; it lets
// the Linux/other sockopts files stay decoupled from net.TCPConn.
type rawConn interface {
	Control(f func(fd uintptr)) error
}

// Connection wraps one outbound FIX TCP connection. It owns the receive
// loop and serializes Send calls across every caller — in this module,
// the four egress sender workers — via a single mutex held only for the
// duration of one message's full write.
type Connection struct {
	conn *net.TCPConn
	cfg  Config

	sendMu sync.Mutex

	connected atomicFlag
	stopOnce  sync.Once
	stopCh    chan struct{}
	doneCh    chan struct{}

	onData       DataCallback
	onDisconnect DisconnectCallback
}

// Dial connects to addr and applies cfg's socket configuration:
// TCP_NODELAY, SO_KEEPALIVE, SO_LINGER(0), configurable send/receive
// buffers, and (Linux only) SO_REUSEADDR.
func Dial(addr string, cfg Config, onData DataCallback, onDisconnect DisconnectCallback) (*Connection, error) {
	tcpAddr, err := net.ResolveTCPAddr("tcp4", addr)
	if err != nil {
		return nil, err
	}
	conn, err := net.DialTCP("tcp4", nil, tcpAddr)
	if err != nil {
		return nil, err
	}
	return newConnection(conn, cfg, onData, onDisconnect)
}

func newConnection(conn *net.TCPConn, cfg Config, onData DataCallback, onDisconnect DisconnectCallback) (*Connection, error) {
	if err := conn.SetNoDelay(true); err != nil {
		return nil, err
	}
	if err := conn.SetKeepAlive(true); err != nil {
		return nil, err
	}
	if cfg.KeepAlive > 0 {
		if err := conn.SetKeepAlivePeriod(cfg.KeepAlive); err != nil {
			return nil, err
		}
	}
	if err := conn.SetLinger(0); err != nil {
		return nil, err
	}
	if err := conn.SetWriteBuffer(cfg.SendBufferBytes); err != nil {
		return nil, err
	}
	if err := conn.SetReadBuffer(cfg.RecvBufferBytes); err != nil {
		return nil, err
	}
	if rc, err := conn.SyscallConn(); err == nil {
		_ = setReuseAddr(rc)
	}

	c := &Connection{
		conn:         conn,
		cfg:          cfg,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
		onData:       onData,
		onDisconnect: onDisconnect,
	}
	c.connected.store(true)
	go c.receiveLoop()
	return c, nil
}

// receiveLoop runs on its own goroutine for the connection's lifetime.
// conn.Read blocks the goroutine until data or an error arrives — Go's
// netpoller parking the goroutine is the idiomatic equivalent of the
// source's "sleep 1ms on EWOULDBLOCK" loop.
func (c *Connection) receiveLoop() {
	defer close(c.doneCh)
	buf := make([]byte, c.cfg.ReceiveBufSize)
	for {
		select {
		case <-c.stopCh:
			return
		default:
		}

		n, err := c.conn.Read(buf)
		if n > 0 && c.onData != nil {
			c.onData(buf[:n])
		}
		if err != nil {
			c.handleReceiveError(err)
			return
		}
	}
}

func (c *Connection) handleReceiveError(err error) {
	select {
	case <-c.stopCh:
		return // clean shutdown, not a disconnect
	default:
	}
	c.connected.store(false)
	if c.onDisconnect != nil {
		c.onDisconnect(err)
	}
}

// Send writes data in full, serialized against every other caller by
// sendMu so that concurrent sender workers never interleave partial
// writes of two different messages on the wire.
func (c *Connection) Send(data []byte) error {
	if !c.connected.load() {
		return ErrNotConnected
	}

	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	_, err := c.conn.Write(data) // net.Conn.Write loops internally until full or error
	if err != nil {
		if isTransportFatal(err) {
			c.connected.store(false)
			if c.onDisconnect != nil {
				c.onDisconnect(err)
			}
		}
		return err
	}
	return nil
}

// Connected reports whether the connection is currently believed to be
// up.
func (c *Connection) Connected() bool { return c.connected.load() }

// Disconnect stops the receive loop, closes the socket, and waits for
// the receive goroutine to exit.
func (c *Connection) Disconnect() error {
	c.stopOnce.Do(func() { close(c.stopCh) })
	c.connected.store(false)
	err := c.conn.Close()
	<-c.doneCh
	return err
}

func isTransportFatal(err error) bool {
	if errors.Is(err, syscall.EPIPE) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	return errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed)
}
