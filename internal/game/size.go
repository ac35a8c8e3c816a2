package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Smallest window the menus still fit in.
const (
	minWidth  = 320
	minHeight = 240
)

// ParseSize parses "WIDTHxHEIGHT", e.g. "1000x900".
func ParseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("size %q: want WIDTHxHEIGHT", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil {
		return 0, 0, fmt.Errorf("size %q: width: %w", s, err)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return 0, 0, fmt.Errorf("size %q: height: %w", s, err)
	}
	if w < minWidth || h < minHeight {
		return 0, 0, fmt.Errorf("size %q: must be at least %dx%d", s, minWidth, minHeight)
	}
	return w, h, nil
}
