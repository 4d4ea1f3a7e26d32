// Package lsystem parses L-system rule files and expands them into line
// segments with a turtle interpreter.
package lsystem

import (
	"fmt"
	"math"
	"strings"

	"gopkg.in/ini.v1"

	"cg-raster/internal/mathutil"
)

// System is a parsed L-system: an alphabet with per-symbol draw flags, one
// production per symbol, an axiom (initiator), the rotation angle and the
// starting heading, and the expansion depth.
type System struct {
	Draw          map[rune]bool
	Rules         map[rune]string
	Initiator     string
	Angle         float64 // radians
	StartingAngle float64 // radians, 2D only
	Iterations    int
}

// Load reads a rule file. The format is INI-style: alphabet, draw, angle,
// startingAngle, initiator and iterations at the top level, with one
// production per symbol in a [Rules] section.
func Load(path string) (*System, error) {
	f, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("lsystem: load %s: %w", path, err)
	}
	return parse(f, path)
}

// LoadString parses rule text directly (used by tests).
func LoadString(text string) (*System, error) {
	f, err := ini.Load([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("lsystem: parse: %w", err)
	}
	return parse(f, "<string>")
}

func parse(f *ini.File, path string) (*System, error) {
	root := f.Section("")
	sys := &System{
		Draw:  make(map[rune]bool),
		Rules: make(map[rune]string),
	}

	alphabet := strings.ReplaceAll(root.Key("alphabet").String(), ",", " ")
	if alphabet == "" {
		return nil, fmt.Errorf("lsystem: %s: missing alphabet", path)
	}
	for _, field := range strings.Fields(alphabet) {
		if len([]rune(field)) != 1 {
			return nil, fmt.Errorf("lsystem: %s: alphabet symbol %q is not a single character", path, field)
		}
		sys.Draw[[]rune(field)[0]] = false
	}
	for _, field := range strings.Fields(strings.ReplaceAll(root.Key("draw").String(), ",", " ")) {
		r := []rune(field)[0]
		if _, ok := sys.Draw[r]; !ok {
			return nil, fmt.Errorf("lsystem: %s: draw symbol %q not in alphabet", path, field)
		}
		sys.Draw[r] = true
	}

	angle, err := root.Key("angle").Float64()
	if err != nil {
		return nil, fmt.Errorf("lsystem: %s: angle: %w", path, err)
	}
	sys.Angle = angle * math.Pi / 180
	sys.StartingAngle = root.Key("startingAngle").MustFloat64(0) * math.Pi / 180

	sys.Initiator = root.Key("initiator").String()
	if sys.Initiator == "" {
		return nil, fmt.Errorf("lsystem: %s: missing initiator", path)
	}
	sys.Iterations, err = root.Key("iterations").Int()
	if err != nil {
		return nil, fmt.Errorf("lsystem: %s: iterations: %w", path, err)
	}

	for _, key := range f.Section("Rules").Keys() {
		r := []rune(key.Name())
		if len(r) != 1 {
			return nil, fmt.Errorf("lsystem: %s: rule %q is not a single symbol", path, key.Name())
		}
		if _, ok := sys.Draw[r[0]]; !ok {
			return nil, fmt.Errorf("lsystem: %s: rule symbol %q not in alphabet", path, key.Name())
		}
		sys.Rules[r[0]] = key.String()
	}
	return sys, nil
}

// replacement returns a symbol's production, defaulting to the symbol itself.
func (s *System) replacement(r rune) string {
	if rep, ok := s.Rules[r]; ok {
		return rep
	}
	return string(r)
}

// Segment2D is one drawn turtle step.
type Segment2D struct {
	A, B mathutil.Vec2
}

type turtle2D struct {
	pos     mathutil.Vec2
	heading mathutil.Vec2
	rot     mathutil.Vec2 // (cos angle, sin angle)
	stack   []turtleState2D
	out     []Segment2D
}

type turtleState2D struct {
	pos, heading mathutil.Vec2
}

// Expand2D runs the depth-bounded recursive expansion and returns the drawn
// unit-step segments.
func (s *System) Expand2D() []Segment2D {
	t := &turtle2D{
		heading: mathutil.Vec2{math.Cos(s.StartingAngle), math.Sin(s.StartingAngle)},
		rot:     mathutil.Vec2{math.Cos(s.Angle), math.Sin(s.Angle)},
	}
	s.run2D(t, s.Initiator, s.Iterations)
	return t.out
}

func (s *System) run2D(t *turtle2D, str string, depth int) {
	for _, c := range str {
		switch c {
		case '+':
			t.heading = rotate2(t.heading, t.rot[0], t.rot[1])
		case '-':
			t.heading = rotate2(t.heading, t.rot[0], -t.rot[1])
		case '(':
			t.stack = append(t.stack, turtleState2D{t.pos, t.heading})
		case ')':
			top := t.stack[len(t.stack)-1]
			t.stack = t.stack[:len(t.stack)-1]
			t.pos, t.heading = top.pos, top.heading
		default:
			if depth > 0 {
				s.run2D(t, s.replacement(c), depth-1)
			} else if s.Draw[c] {
				next := t.pos.Add(t.heading)
				t.out = append(t.out, Segment2D{A: t.pos, B: next})
				t.pos = next
			}
		}
	}
}

func rotate2(v mathutil.Vec2, cos, sin float64) mathutil.Vec2 {
	return mathutil.Vec2{cos*v[0] - sin*v[1], sin*v[0] + cos*v[1]}
}
