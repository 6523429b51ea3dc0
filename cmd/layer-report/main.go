package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"strings"

	"github.com/Garsondee/layered/internal/asset"
	"github.com/Garsondee/layered/internal/game"
	"github.com/Garsondee/layered/internal/palette"
	"github.com/Garsondee/layered/internal/tile"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	borderCol  = lipgloss.Color("#3F3F3A")
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Foreground(hex(palette.Objective)).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(hex(palette.Hint))
	warnStyle  = lipgloss.NewStyle().Foreground(hex(palette.Threat)).Bold(true)
)

var glyphStyles = map[rune]lipgloss.Style{
	game.GlyphWall:      lipgloss.NewStyle().Foreground(hex(palette.Hint)),
	game.GlyphObjective: lipgloss.NewStyle().Foreground(hex(palette.Objective)).Bold(true),
	game.GlyphCompleted: lipgloss.NewStyle().Foreground(hex(palette.Completed)),
	game.GlyphThreat:    lipgloss.NewStyle().Foreground(hex(palette.Threat)).Bold(true),
	game.GlyphAvatar:    lipgloss.NewStyle().Foreground(hex(palette.Default)).Bold(true),
}

func hex(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B))
}

func main() {
	var (
		maps  string
		level int
		ansi  bool
	)
	flag.StringVar(&maps, "maps", "", "directory of level PNGs (built-in levels when empty)")
	flag.IntVar(&level, "level", 0, "1-based level to report (0 reports every level)")
	flag.BoolVar(&ansi, "color", false, "colour glyphs even when stdout is not a terminal")
	flag.Parse()

	if ansi {
		lipgloss.SetColorProfile(termenv.ANSI256)
	}

	levels, err := asset.Levels(maps, game.GridSize, game.GridSize)
	if err != nil {
		log.Fatal(err)
	}
	out, err := report(levels, level)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(out)
}

// selectLevels maps the -level flag onto zero-based indices.
func selectLevels(n, level int) ([]int, error) {
	if level < 0 || level > n {
		return nil, fmt.Errorf("level %d out of range 1..%d", level, n)
	}
	if level > 0 {
		return []int{level - 1}, nil
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx, nil
}

func report(levels []*asset.Binary, level int) (string, error) {
	idx, err := selectLevels(len(levels), level)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	var totalObjectives, totalThreats, unreachable int
	for _, i := range idx {
		st, g, err := game.Survey(i, levels[i])
		if err != nil {
			return "", err
		}
		totalObjectives += st.Objectives
		totalThreats += st.Threats
		unreachable += st.Objectives - st.ReachableObjectives

		b.WriteString(titleStyle.Render(fmt.Sprintf("level %d/%d", i+1, len(levels))))
		b.WriteByte('\n')
		var avatar *tile.Point
		if !st.NoSpawn {
			avatar = &st.Spawn
		}
		b.WriteString(boxStyle.Render(renderMap(game.ASCII(g, tile.Foreground, avatar))))
		b.WriteByte('\n')
		b.WriteString(formatStats(st))
		b.WriteString("\n\n")
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("levels=%d objectives=%d threats=%d unreachable_objectives=%d",
		len(idx), totalObjectives, totalThreats, unreachable)))
	b.WriteByte('\n')
	return b.String(), nil
}

func renderMap(rows []string) string {
	var b strings.Builder
	for y, row := range rows {
		if y > 0 {
			b.WriteByte('\n')
		}
		for _, r := range row {
			if st, ok := glyphStyles[r]; ok {
				b.WriteString(st.Render(string(r)))
				continue
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

func formatStats(st game.LevelStats) string {
	if st.NoSpawn {
		return warnStyle.Render("no spawn: the level has no floor")
	}
	line := fmt.Sprintf("spawn=(%d,%d) walls=%d floors=%d reachable=%d objectives=%d/%d threats=%d",
		st.Spawn.X, st.Spawn.Y, st.Walls, st.Floors, st.Reachable,
		st.ReachableObjectives, st.Objectives, st.Threats)
	if st.ReachableObjectives < st.Objectives {
		return line + " " + warnStyle.Render(fmt.Sprintf("(%d unreachable)", st.Objectives-st.ReachableObjectives))
	}
	return line
}
