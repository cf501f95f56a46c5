package session

import (
	"bytes"
	"context"
	"errors"
	"net"
	"sync"
	"testing"

	"github.com/danmuck/mcctl/internal/protocol"
	"github.com/danmuck/mcctl/internal/protocol/frame"
	"github.com/danmuck/mcctl/internal/testutil/testlog"
)

func transportPair(t *testing.T) (*Transport, *Transport) {
	t.Helper()
	a, b := net.Pipe()
	ta := NewTransport(a, frame.DefaultLimits())
	tb := NewTransport(b, frame.DefaultLimits())
	t.Cleanup(func() {
		_ = ta.Close()
		_ = tb.Close()
	})
	return ta, tb
}

func TestTransportRoundTripAcrossThresholds(t *testing.T) {
	testlog.Start(t)

	for _, threshold := range []int32{-1, 0, 64, 1 << 20} {
		client, server := transportPair(t)
		client.SetThreshold(threshold)
		server.SetThreshold(threshold)

		sizes := []int{0, 9, 62, 63, 64, 200, 4096}
		done := make(chan error, 1)
		go func() {
			for _, size := range sizes {
				if err := client.Send(0x03, bytes.Repeat([]byte{'x'}, size)); err != nil {
					done <- err
					return
				}
			}
			done <- nil
		}()
		for _, size := range sizes {
			pkt, err := server.Receive()
			if err != nil {
				t.Fatalf("threshold=%d size=%d receive: %v", threshold, size, err)
			}
			if pkt.ID != 0x03 || len(pkt.Payload) != size {
				t.Fatalf("threshold=%d size=%d got %s", threshold, size, pkt)
			}
		}
		if err := <-done; err != nil {
			t.Fatalf("threshold=%d send: %v", threshold, err)
		}
	}
}

func TestTransportReceiveAfterPeerClose(t *testing.T) {
	testlog.Start(t)

	a, b := net.Pipe()
	tr := NewTransport(a, frame.DefaultLimits())
	_ = b.Close()
	_, err := tr.Receive()
	if !errors.Is(err, protocol.ErrConnectionClosed) {
		t.Fatalf("expected ErrConnectionClosed, got %v", err)
	}
}

func TestTransportTruncatedFrameIsClosed(t *testing.T) {
	testlog.Start(t)

	a, b := net.Pipe()
	tr := NewTransport(a, frame.DefaultLimits())
	go func() {
		_, _ = b.Write(append(protocol.EncodeVarInt(20), []byte{0x0e, 0x01}...))
		_ = b.Close()
	}()
	_, err := tr.Receive()
	if !errors.Is(err, protocol.ErrConnectionClosed) || !errors.Is(err, protocol.ErrTruncatedFrame) {
		t.Fatalf("expected closed+truncated, got %v", err)
	}
}

func TestTransportCutOffLengthPrefixIsClosed(t *testing.T) {
	testlog.Start(t)

	a, b := net.Pipe()
	tr := NewTransport(a, frame.DefaultLimits())
	go func() {
		_, _ = b.Write([]byte{0x80})
		_ = b.Close()
	}()
	_, err := tr.Receive()
	if !errors.Is(err, protocol.ErrConnectionClosed) || !errors.Is(err, protocol.ErrMalformedVarInt) {
		t.Fatalf("expected closed+malformed, got %v", err)
	}
}

func TestTransportSendAfterCloseIsClosed(t *testing.T) {
	testlog.Start(t)

	a, b := net.Pipe()
	_ = b.Close()
	tr := NewTransport(a, frame.DefaultLimits())
	err := tr.Send(0x10, make([]byte, 8))
	if !errors.Is(err, protocol.ErrConnectionClosed) {
		t.Fatalf("expected ErrConnectionClosed, got %v", err)
	}
}

func TestTransportConcurrentSendsDoNotInterleave(t *testing.T) {
	testlog.Start(t)

	client, server := transportPair(t)
	client.SetThreshold(32)
	server.SetThreshold(32)

	const perWriter = 50
	var wg sync.WaitGroup
	for w := 0; w < 2; w++ {
		wg.Add(1)
		go func(fill byte) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				if err := client.Send(int32(fill), bytes.Repeat([]byte{fill}, 10+i*7)); err != nil {
					t.Errorf("send: %v", err)
					return
				}
			}
		}(byte(w + 1))
	}

	for i := 0; i < 2*perWriter; i++ {
		pkt, err := server.Receive()
		if err != nil {
			t.Fatalf("receive %d: %v", i, err)
		}
		for _, b := range pkt.Payload {
			if int32(b) != pkt.ID {
				t.Fatalf("interleaved payload in packet %d", i)
			}
		}
	}
	wg.Wait()
}

type flakyDialer struct {
	failures int
	calls    int
}

func (d *flakyDialer) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	d.calls++
	if d.calls <= d.failures {
		return nil, errors.New("connection refused")
	}
	a, _ := net.Pipe()
	return a, nil
}

func TestDialRetriesUntilSuccess(t *testing.T) {
	testlog.Start(t)

	d := &flakyDialer{failures: 2}
	conn, err := Dial(context.Background(), d, "127.0.0.1:25565", DefaultConfig())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	_ = conn.Close()
	if d.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", d.calls)
	}
}

func TestDialGivesUpAfterMaxAttempts(t *testing.T) {
	testlog.Start(t)

	d := &flakyDialer{failures: 100}
	_, err := Dial(context.Background(), d, "127.0.0.1:25565", DefaultConfig())
	if !errors.Is(err, ErrConnectFailed) {
		t.Fatalf("expected ErrConnectFailed, got %v", err)
	}
	if d.calls != 5 {
		t.Fatalf("expected 5 attempts, got %d", d.calls)
	}
}
