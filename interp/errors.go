package interp

import (
	"fmt"

	"github.com/npillmayer/pengo"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// RuntimeError is an error occuring during the execution of a program.
type RuntimeError struct {
	Pos pengo.Position
	Msg string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s %s", e.Pos, e.Msg)
}

func runtimeError(pos pengo.Position, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// undefined creates an error for a name without binding. If one of the
// visible names is similar, it is suggested.
func undefined(pos pengo.Position, name string, visible []string) *RuntimeError {
	e := runtimeError(pos, "undefined name %q", name)
	if s := suggest(name, visible); s != "" {
		e.Msg += fmt.Sprintf(", did you mean %q?", s)
	}
	return e
}

// suggest returns the candidate with the smallest edit distance to name, if
// the distance is small compared to the length of name.
func suggest(name string, candidates []string) string {
	limit := len(name) / 3
	if limit < 1 {
		limit = 1
	}
	if limit > 3 {
		limit = 3
	}
	best, dist := "", limit+1
	for _, c := range candidates {
		d := levenshtein.DistanceForStrings([]rune(name), []rune(c), levenshtein.DefaultOptionsWithSub)
		if d < dist {
			best, dist = c, d
		}
	}
	return best
}
