package greeting

import (
	"fmt"
	"os"
	"strings"
)

// Greeting is the payload returned by the hello endpoint.
type Greeting struct {
	Message string `json:"message"`
}

// HostnameFunc resolves the name of the machine serving the request.
type HostnameFunc func() (string, error)

// Service composes host-qualified greetings.
type Service struct {
	hostname HostnameFunc
}

// New returns a Service that resolves the host with os.Hostname.
func New() *Service {
	return NewWithHostname(os.Hostname)
}

// NewWithHostname returns a Service using the given hostname resolver.
func NewWithHostname(hostname HostnameFunc) *Service {
	return &Service{hostname: hostname}
}

// Greet greets name, or "World" when name is blank.
func (s *Service) Greet(name string) Greeting {
	if strings.TrimSpace(name) == "" {
		name = "World"
	}

	host, err := s.hostname()
	if err != nil || host == "" {
		host = "localhost"
	}

	return Greeting{Message: fmt.Sprintf("Hello %s from %s v2", name, host)}
}
