package shell

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseGeometry parses a "WIDTHxHEIGHT" size specification. A trailing
// "+X+Y" position suffix is accepted and ignored; anything else is an
// error returned to the caller unchanged.
func ParseGeometry(spec string) (width, height int, err error) {
	size, _, _ := strings.Cut(spec, "+")

	w, h, ok := strings.Cut(size, "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid geometry %q: expected WIDTHxHEIGHT", spec)
	}

	width, err = strconv.Atoi(w)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid geometry %q: bad width: %w", spec, err)
	}
	height, err = strconv.Atoi(h)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid geometry %q: bad height: %w", spec, err)
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("invalid geometry %q: dimensions must be positive", spec)
	}
	return width, height, nil
}
