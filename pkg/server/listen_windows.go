package server

import (
	"net"
	"strings"

	winio "github.com/Microsoft/go-winio"
)

// listenNamedPipe restricts the pipe to its creator and local administrators.
func listenNamedPipe(name string) (net.Listener, error) {
	if !strings.HasPrefix(name, `\\`) {
		name = `\\.\pipe\` + name
	}
	return winio.ListenPipe(name, &winio.PipeConfig{
		SecurityDescriptor: "D:P(A;;GA;;;BA)(A;;GA;;;OW)",
	})
}
