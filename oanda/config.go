package oanda

import (
	"fmt"
	"strings"
)

const (
	// PracticeURL is the URL for OANDA's practice/demo environment
	PracticeURL = "https://api-fxpractice.oanda.com"
	// LiveURL is the URL for OANDA's live trading environment
	LiveURL = "https://api-fxtrade.oanda.com"
)

// Config carries the broker credentials and endpoint. It is built
// explicitly at startup and handed to NewClient; nothing in this
// package reads process environment or other ambient state.
type Config struct {
	// BaseURL overrides the environment-derived URL when set. Useful
	// for tests and local stubs.
	BaseURL string

	// Env selects practice or live when BaseURL is empty.
	Env string

	Token     string
	AccountID string
}

func (c Config) baseURL() (string, error) {
	if c.BaseURL != "" {
		return c.BaseURL, nil
	}
	switch strings.ToLower(strings.TrimSpace(c.Env)) {
	case "", "practice", "demo":
		return PracticeURL, nil
	case "live":
		return LiveURL, nil
	}
	return "", fmt.Errorf("unknown OANDA env %q (want practice|live)", c.Env)
}

// Validate checks the parts every request needs.
func (c Config) Validate() error {
	if c.Token == "" {
		return fmt.Errorf("oanda token is required")
	}
	if _, err := c.baseURL(); err != nil {
		return err
	}
	return nil
}
