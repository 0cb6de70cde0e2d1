package pluginio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"strconv"
	"strings"
)

// SessionCookie is the authenticated session the host hands to plugins.
type SessionCookie struct {
	Name  string `json:"Name"`
	Value string `json:"Value"`
}

// ServerConnection describes how to reach the host that launched the plugin.
type ServerConnection struct {
	Scheme        string         `json:"Scheme"`
	Host          string         `json:"Host"`
	Port          int            `json:"Port"`
	SessionCookie *SessionCookie `json:"SessionCookie"`
	APIKey        string         `json:"ApiKey"`
	Dir           string         `json:"Dir"`
	PluginDir     string         `json:"PluginDir"`
}

// Args are the task arguments declared in the plugin manifest.
type Args struct {
	Mode string `json:"mode"`
}

// Input is the document read from standard input.
type Input struct {
	Args             Args             `json:"args"`
	ServerConnection ServerConnection `json:"server_connection"`
}

// ReadInput decodes a single invocation document.
func ReadInput(r io.Reader) (*Input, error) {
	if r == nil {
		return nil, errors.New("plugin input reader is nil")
	}
	var input Input
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&input); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("plugin input is empty")
		}
		return nil, fmt.Errorf("decode plugin input: %w", err)
	}
	return &input, nil
}

// GraphQLURL returns the host's GraphQL endpoint. Wildcard bind addresses are
// rewritten to loopback since the plugin always runs on the host machine.
func (c ServerConnection) GraphQLURL() (string, error) {
	scheme := strings.ToLower(strings.TrimSpace(c.Scheme))
	if scheme == "" {
		scheme = "http"
	}
	if scheme != "http" && scheme != "https" {
		return "", fmt.Errorf("server connection: unsupported scheme %q", c.Scheme)
	}
	host := strings.TrimSpace(c.Host)
	switch host {
	case "", "0.0.0.0", "::":
		host = "localhost"
	}
	if c.Port <= 0 {
		return "", fmt.Errorf("server connection: invalid port %d", c.Port)
	}
	endpoint := url.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(host, strconv.Itoa(c.Port)),
		Path:   "/graphql",
	}
	return endpoint.String(), nil
}
