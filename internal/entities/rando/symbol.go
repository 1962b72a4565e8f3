// Package rando holds the value types shared by the generation engine, the
// repositories and the transport layer.
package rando

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-rando/internal/errors"
)

var (
	symbolPattern = regexp.MustCompile(`^MW\((\d+)\)_(.+)$`)
	suffixPattern = regexp.MustCompile(`_\(\d+\)$`)
)

// Symbol is an item, location or transition name owned by one player.
// Single player generation uses player 0 for everything.
type Symbol struct {
	Player int
	Name   string
}

// NewSymbol is a shorthand used heavily by the engine
func NewSymbol(player int, name string) Symbol {
	return Symbol{Player: player, Name: name}
}

// String renders the symbol as MW(<player+1>)_<name>
func (s Symbol) String() string {
	return fmt.Sprintf("MW(%d)_%s", s.Player+1, s.Name)
}

// MarshalText lets symbols be used as JSON object keys
func (s Symbol) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses the MW(<player+1>)_<name> form
func (s *Symbol) UnmarshalText(text []byte) error {
	parsed, err := ParseSymbol(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSymbol is the inverse of Symbol.String
func ParseSymbol(text string) (Symbol, error) {
	matches := symbolPattern.FindStringSubmatch(text)
	if len(matches) != 3 {
		return Symbol{}, errors.InvalidArgumentf("invalid symbol %q", text)
	}
	n, err := strconv.Atoi(matches[1])
	if err != nil || n < 1 {
		return Symbol{}, errors.InvalidArgumentf("invalid player in symbol %q", text)
	}
	return Symbol{Player: n - 1, Name: matches[2]}, nil
}

// DuplicateName is the name given to the copy of a duplicated major item
func DuplicateName(name string) string {
	return name + "_(1)"
}

// FillerName names the n-th cursed filler item built from base
func FillerName(base string, n int) string {
	return fmt.Sprintf("%s_(%d)", base, n)
}

// BaseName strips a trailing _(n) suffix
func BaseName(name string) string {
	if loc := suffixPattern.FindStringIndex(name); loc != nil {
		return name[:loc[0]]
	}
	return name
}

// IsSuffixed reports whether the name carries a _(n) suffix
func IsSuffixed(name string) bool {
	return strings.HasSuffix(name, ")") && suffixPattern.MatchString(name)
}
