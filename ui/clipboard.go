package ui

import (
	"github.com/atotto/clipboard"
)

// SystemClipboard writes to the OS clipboard.
type SystemClipboard struct{}

// NewSystemClipboard returns the OS clipboard adapter.
func NewSystemClipboard() *SystemClipboard {
	return &SystemClipboard{}
}

// Write places text on the clipboard.
func (c *SystemClipboard) Write(text string) error {
	return clipboard.WriteAll(text)
}
