package server

import "testing"

func TestSubscriberRefusesWritesUnlessOpen(t *testing.T) {
	// No socket is attached; the state gate must refuse the write before
	// the connection is ever touched.
	sub := &subscriber{send: make(chan []byte, 1)}

	sub.state.Store(int32(stateConnecting))
	if sub.write([]byte("x")) {
		t.Fatalf("expected write before the connection opens to be refused")
	}

	sub.state.Store(int32(stateClosed))
	if sub.write([]byte("x")) {
		t.Fatalf("expected write after close to be refused")
	}
}
