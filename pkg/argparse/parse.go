package argparse

import (
	"errors"
	"strings"
)

const optionPrefix = "--"

// ErrNilArguments is returned by ParseArguments when it is given a nil slice.
var ErrNilArguments = errors.New("arguments must not be nil")

// ParseArguments parses tokens into Arguments. It only fails when tokens is nil: tokens that
// are not options are ignored, never rejected.
//
// A value that starts with "--" can't be passed as a separate token, since it is read as the
// next option. Use the "--key=--value" form instead.
func ParseArguments(tokens []string) (Arguments, error) {
	if tokens == nil {
		return Arguments{}, ErrNilArguments
	}

	args := NewArguments(len(tokens) / 2)

	for i := 0; i < len(tokens); i++ {
		token := tokens[i]
		if len(token) < 3 || !strings.HasPrefix(token, optionPrefix) {
			continue
		}

		// --key=value
		if eq := strings.IndexByte(token, '='); eq > 2 {
			args.Set(token[:eq], token[eq+1:])
			continue
		}

		// --key value
		if i+1 >= len(tokens) {
			args.Set(token, "")
			continue
		}

		next := tokens[i+1]
		if strings.HasPrefix(next, optionPrefix) {
			args.Set(token, "")
			continue
		}

		args.Set(token, next)
		i++
	}

	return args, nil
}
