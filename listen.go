package server

import (
	"fmt"
	"net"
)

// Automatic port selection probes this fixed range in ascending order.
const (
	autoPortStart = 7000
	autoPortEnd   = 7099
)

// bindListener binds the instance's port. An explicit port binds exactly
// that port or fails; port zero probes the automatic range and fails only
// once the entire range is exhausted.
func bindListener(port int) (net.Listener, int, error) {
	if port != 0 {
		ln, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", port))
		if err != nil {
			return nil, 0, fmt.Errorf("port %d is unavailable: %w", port, err)
		}
		return ln, port, nil
	}

	for candidate := autoPortStart; candidate <= autoPortEnd; candidate++ {
		ln, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", candidate))
		if err == nil {
			return ln, candidate, nil
		}
	}
	return nil, 0, fmt.Errorf("no free port in %d-%d", autoPortStart, autoPortEnd)
}
