package gui

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
)

var ErrNoTheme = errors.New("theme: no theme found")

// Terminal safe color palette is available here
// https://upload.wikimedia.org/wikipedia/commons/1/15/Xterm_256color_chart.svg

// Theme is used for dynamically coloring the UI
type Theme struct {
	Name         string
	MoveLabelBg  tcell.Color
	MoveLabelFg  tcell.Color
	SquareDark   tcell.Color
	SquareLight  tcell.Color
	SquareHigh   tcell.Color
	SquareHint   tcell.Color
	SquareSelect tcell.Color
	Red          tcell.Color
	Blue         tcell.Color
	Msg          tcell.Color
	Rank         tcell.Color
	File         tcell.Color
	MeterBase    tcell.Color
	MeterMid     tcell.Color
	MeterNeutral tcell.Color
	MeterWin     tcell.Color
	MeterLose    tcell.Color
	PlayerNames  tcell.Color
	Score        tcell.Color
	MoveBox      tcell.Color
}

// ThemeHex is the form themes take in a JSON file.
type ThemeHex struct {
	Name         string `json:"name"`
	MoveLabelBg  string `json:"moveLabelBg"`
	MoveLabelFg  string `json:"moveLabelFg"`
	SquareDark   string `json:"squareDark"`
	SquareLight  string `json:"squareLight"`
	SquareHigh   string `json:"squareHigh"`
	SquareHint   string `json:"squareHint"`
	SquareSelect string `json:"squareSelect"`
	Red          string `json:"red"`
	Blue         string `json:"blue"`
	Msg          string `json:"msg"`
	Rank         string `json:"rank"`
	File         string `json:"file"`
	MeterBase    string `json:"meterBase"`
	MeterMid     string `json:"meterMid"`
	MeterNeutral string `json:"meterNeutral"`
	MeterWin     string `json:"meterWin"`
	MeterLose    string `json:"meterLose"`
	PlayerNames  string `json:"playerNames"`
	Score        string `json:"score"`
	MoveBox      string `json:"moveBox"`
}

// fmtHex returns "#0" for ColorDefault so it survives a round trip instead
// of coming back as black.
func fmtHex(c tcell.Color) string {
	v := c.Hex()
	if v == -1 {
		return "#0"
	}
	return fmt.Sprintf("#%06x", v)
}

// Hex converts a Theme to a ThemeHex
func (t Theme) Hex() ThemeHex {
	return ThemeHex{
		Name:         t.Name,
		MoveLabelBg:  fmtHex(t.MoveLabelBg),
		MoveLabelFg:  fmtHex(t.MoveLabelFg),
		SquareDark:   fmtHex(t.SquareDark),
		SquareLight:  fmtHex(t.SquareLight),
		SquareHigh:   fmtHex(t.SquareHigh),
		SquareHint:   fmtHex(t.SquareHint),
		SquareSelect: fmtHex(t.SquareSelect),
		Red:          fmtHex(t.Red),
		Blue:         fmtHex(t.Blue),
		Msg:          fmtHex(t.Msg),
		Rank:         fmtHex(t.Rank),
		File:         fmtHex(t.File),
		MeterBase:    fmtHex(t.MeterBase),
		MeterMid:     fmtHex(t.MeterMid),
		MeterNeutral: fmtHex(t.MeterNeutral),
		MeterWin:     fmtHex(t.MeterWin),
		MeterLose:    fmtHex(t.MeterLose),
		PlayerNames:  fmtHex(t.PlayerNames),
		Score:        fmtHex(t.Score),
		MoveBox:      fmtHex(t.MoveBox),
	}
}

// Theme converts a ThemeHex to a Theme
func (t ThemeHex) Theme() Theme {
	return Theme{
		Name:         t.Name,
		MoveLabelBg:  tcell.GetColor(t.MoveLabelBg),
		MoveLabelFg:  tcell.GetColor(t.MoveLabelFg),
		SquareDark:   tcell.GetColor(t.SquareDark),
		SquareLight:  tcell.GetColor(t.SquareLight),
		SquareHigh:   tcell.GetColor(t.SquareHigh),
		SquareHint:   tcell.GetColor(t.SquareHint),
		SquareSelect: tcell.GetColor(t.SquareSelect),
		Red:          tcell.GetColor(t.Red),
		Blue:         tcell.GetColor(t.Blue),
		Msg:          tcell.GetColor(t.Msg),
		Rank:         tcell.GetColor(t.Rank),
		File:         tcell.GetColor(t.File),
		MeterBase:    tcell.GetColor(t.MeterBase),
		MeterMid:     tcell.GetColor(t.MeterMid),
		MeterNeutral: tcell.GetColor(t.MeterNeutral),
		MeterWin:     tcell.GetColor(t.MeterWin),
		MeterLose:    tcell.GetColor(t.MeterLose),
		PlayerNames:  tcell.GetColor(t.PlayerNames),
		Score:        tcell.GetColor(t.Score),
		MoveBox:      tcell.GetColor(t.MoveBox),
	}
}

// ImportThemes returns a converted Theme from a slice of ThemeHex
// entities if its name matches the want argument
func ImportThemes(want string, themes []ThemeHex) (Theme, error) {
	for _, t := range themes {
		if t.Name == want {
			return t.Theme(), nil
		}
	}
	return Theme{}, fmt.Errorf("%w: %q", ErrNoTheme, want)
}

// LoadThemes reads a JSON array of ThemeHex.
func LoadThemes(path string) ([]ThemeHex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read themes: %w", err)
	}
	var themes []ThemeHex
	if err := json.Unmarshal(data, &themes); err != nil {
		return nil, fmt.Errorf("parse themes %s: %w", path, err)
	}
	return themes, nil
}

// FindTheme looks want up in custom first, then in the built in themes.
func FindTheme(want string, custom []ThemeHex) (Theme, error) {
	if t, err := ImportThemes(want, custom); err == nil {
		return t, nil
	}
	for _, t := range Themes {
		if t.Name == want {
			return t, nil
		}
	}
	return Theme{}, fmt.Errorf("%w: %q", ErrNoTheme, want)
}

// ThemeBasic is the default theme
var ThemeBasic = Theme{
	Name:         "basic",
	MoveLabelBg:  tcell.Color252,
	MoveLabelFg:  tcell.ColorBlack,
	SquareDark:   tcell.Color101,
	SquareLight:  tcell.Color230,
	SquareHigh:   tcell.Color179,
	SquareHint:   tcell.Color223,
	SquareSelect: tcell.Color226,
	Red:          tcell.Color160,
	Blue:         tcell.Color27,
	Msg:          tcell.Color160,
	Rank:         tcell.Color247,
	File:         tcell.Color247,
	MeterBase:    tcell.Color240,
	MeterMid:     tcell.ColorDefault,
	MeterNeutral: tcell.Color45,
	MeterWin:     tcell.Color122,
	MeterLose:    tcell.Color167,
	PlayerNames:  tcell.ColorDefault,
	Score:        tcell.Color247,
	MoveBox:      tcell.ColorDefault,
}

var ThemeMidnight = Theme{
	Name:         "midnight",
	MoveLabelBg:  tcell.Color24,
	MoveLabelFg:  tcell.Color255,
	SquareDark:   tcell.Color236,
	SquareLight:  tcell.Color244,
	SquareHigh:   tcell.Color58,
	SquareHint:   tcell.Color23,
	SquareSelect: tcell.Color94,
	Red:          tcell.Color203,
	Blue:         tcell.Color81,
	Msg:          tcell.Color210,
	Rank:         tcell.Color244,
	File:         tcell.Color244,
	MeterBase:    tcell.Color238,
	MeterMid:     tcell.ColorDefault,
	MeterNeutral: tcell.Color110,
	MeterWin:     tcell.Color114,
	MeterLose:    tcell.Color174,
	PlayerNames:  tcell.Color252,
	Score:        tcell.Color244,
	MoveBox:      tcell.Color244,
}

var Themes = []Theme{ThemeBasic, ThemeMidnight}
