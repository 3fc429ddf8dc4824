// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"net"
	"sync"
	"testing"
	"time"
)

// loopbackServer accepts exactly one connection and delivers it on
// accepted (closed without a value if Accept fails); the test closes it
// via its listener.
func loopbackServer(t *testing.T) (addr string, accepted <-chan net.Conn, ln net.Listener) {
	t.Helper()
	l, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ch := make(chan net.Conn, 1)
	go func() {
		c, err := l.Accept()
		if err != nil {
			close(ch)
			return
		}
		ch <- c
	}()
	return l.Addr().String(), ch, l
}

func TestDial_SendDeliversBytesToPeer(t *testing.T) {
	addr, accepted, ln := loopbackServer(t)
	defer ln.Close()

	conn, err := Dial(addr, DefaultConfig(), nil, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Disconnect()

	peer, ok := <-accepted
	if !ok {
		t.Fatal("server never accepted")
	}
	defer peer.Close()

	if err := conn.Send([]byte("8=FIX.4.4\x019=5\x0135=0\x0110=000\x01")); err != nil {
		t.Fatalf("Send: %v", err)
	}

	buf := make([]byte, 256)
	peer.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, err := peer.Read(buf)
	if err != nil {
		t.Fatalf("peer Read: %v", err)
	}
	if got := string(buf[:n]); got == "" {
		t.Fatal("expected non-empty payload on the wire")
	}
}

func TestDial_ReceiveLoopDeliversToCallback(t *testing.T) {
	addr, accepted, ln := loopbackServer(t)
	defer ln.Close()

	var mu sync.Mutex
	var got []byte
	dataCh := make(chan struct{}, 1)

	conn, err := Dial(addr, DefaultConfig(), func(data []byte) {
		mu.Lock()
		got = append(got, data...)
		mu.Unlock()
		select {
		case dataCh <- struct{}{}:
		default:
		}
	}, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Disconnect()

	peer, ok := <-accepted
	if !ok {
		t.Fatal("server never accepted")
	}
	defer peer.Close()

	if _, err := peer.Write([]byte("hello")); err != nil {
		t.Fatalf("peer Write: %v", err)
	}

	select {
	case <-dataCh:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for data callback")
	}

	mu.Lock()
	defer mu.Unlock()
	if string(got) != "hello" {
		t.Fatalf("got %q, want %q", got, "hello")
	}
}

func TestDial_PeerCloseFiresDisconnectCallback(t *testing.T) {
	addr, accepted, ln := loopbackServer(t)
	defer ln.Close()

	disconnected := make(chan error, 1)
	conn, err := Dial(addr, DefaultConfig(), nil, func(err error) {
		disconnected <- err
	})
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Disconnect()

	peer, ok := <-accepted
	if !ok {
		t.Fatal("server never accepted")
	}
	peer.Close()

	select {
	case err := <-disconnected:
		if err == nil {
			t.Fatal("expected a non-nil disconnect error")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for disconnect callback")
	}

	if conn.Connected() {
		t.Fatal("Connected() should be false after peer close")
	}
	if err := conn.Send([]byte("x")); err != ErrNotConnected {
		t.Fatalf("Send after disconnect: got %v, want ErrNotConnected", err)
	}
}

func TestDial_DisconnectIsCleanNotReportedAsFailure(t *testing.T) {
	addr, accepted, ln := loopbackServer(t)
	defer ln.Close()

	disconnected := make(chan error, 1)
	conn, err := Dial(addr, DefaultConfig(), nil, func(err error) {
		disconnected <- err
	})
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}

	peer, ok := <-accepted
	if !ok {
		t.Fatal("server never accepted")
	}
	defer peer.Close()

	if err := conn.Disconnect(); err != nil {
		t.Fatalf("Disconnect: %v", err)
	}

	select {
	case <-disconnected:
		t.Fatal("a caller-initiated Disconnect must not also fire the disconnect callback")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDial_ConcurrentSendsAreSerialized(t *testing.T) {
	addr, accepted, ln := loopbackServer(t)
	defer ln.Close()

	conn, err := Dial(addr, DefaultConfig(), nil, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Disconnect()

	peer, ok := <-accepted
	if !ok {
		t.Fatal("server never accepted")
	}
	defer peer.Close()

	const n = 50
	payload := make([]byte, 200)
	for i := range payload {
		payload[i] = byte('a' + i%26)
	}

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := conn.Send(payload); err != nil {
				t.Errorf("Send: %v", err)
			}
		}()
	}
	wg.Wait()

	total := 0
	buf := make([]byte, 4096)
	peer.SetReadDeadline(time.Now().Add(2 * time.Second))
	for total < n*len(payload) {
		nRead, err := peer.Read(buf)
		if err != nil {
			t.Fatalf("peer Read: %v", err)
		}
		total += nRead
	}
	if total != n*len(payload) {
		t.Fatalf("got %d bytes, want %d", total, n*len(payload))
	}
}
