package pkg

import (
	"fmt"
	"regexp"
	"strings"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/qnkhuat/checkerterm/pkg/checkers"
)

const maxNameLen = 16

var nameRe = regexp.MustCompile(`[^a-zA-Z0-9_\-]+`)

type Player struct {
	Name     string
	Color    checkers.Color
	Computer bool
}

func NewPlayer(name string, color checkers.Color, computer bool) *Player {
	return &Player{
		Name:     Nickname(name),
		Color:    color,
		Computer: computer,
	}
}

func (p *Player) String() string {
	kind := "human"
	if p.Computer {
		kind = "computer"
	}
	return fmt.Sprintf("%s (%s, %s)", p.Name, p.Color, kind)
}

// Nickname cleans a user supplied name. An empty result gets a random pet
// name.
func Nickname(name string) string {
	name = nameRe.ReplaceAllString(strings.TrimSpace(name), "")
	if len(name) > maxNameLen {
		name = name[:maxNameLen]
	}
	if name == "" {
		name = petname.Generate(2, "-")
	}
	return name
}
