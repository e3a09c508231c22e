// Package domain contains entity types without logic, just meta-data
package domain

import "errors"

const (
	MaxNameLen  = 36
	DefaultName = "Anonymous"
)

var (
	ErrNameTooLong = errors.New("display name too long")
	ErrNameEmpty   = errors.New("display name empty")
)

// ConnID identifies one live client connection. Stable for the
// connection's lifetime, never reused while the connection exists.
type ConnID string

type Client struct {
	ID   ConnID `json:"id"`
	Name string `json:"name"`
}

// NewClient is a tiny helper to avoid ad-hoc struct literals in adapters.
func NewClient(id ConnID) *Client {
	return &Client{ID: id, Name: DefaultName}
}

func (c *Client) SetName(name string) error {
	if len(name) == 0 {
		return ErrNameEmpty
	}
	if len(name) > MaxNameLen {
		return ErrNameTooLong
	}
	c.Name = name
	return nil
}
