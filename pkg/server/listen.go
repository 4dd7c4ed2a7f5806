package server

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Listen opens the listener for addr. Besides host:port it understands
// unix://path, npipe://name and fd://N for a socket handed over by a
// supervisor.
func Listen(ctx context.Context, addr string) (net.Listener, error) {
	scheme, rest, ok := strings.Cut(addr, "://")
	if !ok {
		return listenTCP(ctx, addr)
	}

	switch scheme {
	case "tcp":
		return listenTCP(ctx, rest)
	case "unix":
		return listenUnix(ctx, rest)
	case "npipe":
		return listenNamedPipe(rest)
	case "fd":
		fd, err := strconv.Atoi(rest)
		if err != nil {
			return nil, fmt.Errorf("invalid file descriptor %q: %w", rest, err)
		}
		return net.FileListener(os.NewFile(uintptr(fd), "listener"))
	default:
		return nil, fmt.Errorf("unsupported listen address %q", addr)
	}
}

func listenUnix(ctx context.Context, path string) (net.Listener, error) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	var lc net.ListenConfig
	return lc.Listen(ctx, "unix", path)
}

func listenTCP(ctx context.Context, addr string) (net.Listener, error) {
	var lc net.ListenConfig
	return lc.Listen(ctx, "tcp", addr)
}
