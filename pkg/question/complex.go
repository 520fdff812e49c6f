package question

import (
	"fmt"
	"math/rand/v2"

	"github.com/matzehuels/gridtower/pkg/grid"
)

var complexGenerators = []Generator{
	{"rotate_90", KindComplex, func(rng *rand.Rand, s Scene) (QA, bool) {
		return Rotate90(s.pickGrid(rng)), true
	}},
	{"rotate_180", KindComplex, func(rng *rand.Rand, s Scene) (QA, bool) {
		return Rotate180(s.pickGrid(rng)), true
	}},
	{"rotate_270", KindComplex, func(rng *rand.Rand, s Scene) (QA, bool) {
		return Rotate270(s.pickGrid(rng)), true
	}},
	{"reflect_horizontal", KindComplex, func(rng *rand.Rand, s Scene) (QA, bool) {
		return ReflectHorizontal(s.pickGrid(rng)), true
	}},
	{"reflect_vertical", KindComplex, func(rng *rand.Rand, s Scene) (QA, bool) {
		return ReflectVertical(s.pickGrid(rng)), true
	}},
	{"color_pattern", KindComplex, func(rng *rand.Rand, s Scene) (QA, bool) {
		g := s.pickGrid(rng)
		a, b, ok := s.pickTwoColors(rng)
		if !ok {
			return QA{}, false
		}
		return ColorPattern(g, a, b), true
	}},
	{"largest_region", KindComplex, func(rng *rand.Rand, s Scene) (QA, bool) {
		return LargestRegion(s.pickGrid(rng)), true
	}},
	{"color_row_rule", KindComplex, func(rng *rand.Rand, s Scene) (QA, bool) {
		g := s.pickGrid(rng)
		return ApplyRule(g, grid.ColorRowRule{Color: s.pickColor(rng)}), true
	}},
}

func Rotate90(g grid.Grid) QA {
	return transformQA(g, "90-degree clockwise rotation", g.Rotate90())
}

func Rotate180(g grid.Grid) QA {
	return transformQA(g, "180-degree rotation", g.Rotate180())
}

func Rotate270(g grid.Grid) QA {
	return transformQA(g, "270-degree clockwise rotation", g.Rotate270())
}

func ReflectHorizontal(g grid.Grid) QA {
	return transformQA(g, "horizontal reflection", g.ReflectHorizontal())
}

func ReflectVertical(g grid.Grid) QA {
	return transformQA(g, "vertical reflection", g.ReflectVertical())
}

func transformQA(g grid.Grid, what string, out grid.Grid) QA {
	return QA{
		Question: fmt.Sprintf("What is the %s of %s?", what, g.Name),
		Answer:   fmt.Sprintf("The %s of %s is: %s", what, g.Name, grid.FormatCells(out.Cells)),
	}
}

// ColorPattern counts horizontally adjacent first→second pairs.
func ColorPattern(g grid.Grid, first, second string) QA {
	pattern := fmt.Sprintf("'%s followed by %s'", first, second)
	return QA{
		Question: fmt.Sprintf("How many times does the pattern %s appear horizontally in %s?", pattern, g.Name),
		Answer:   fmt.Sprintf("The pattern %s appears %d times horizontally in %s.", pattern, g.PairCount(first, second), g.Name),
	}
}

func LargestRegion(g grid.Grid) QA {
	area, color := g.LargestRegion()
	return QA{
		Question: fmt.Sprintf("What is the largest contiguous area of a single color in %s, and what color is it?", g.Name),
		Answer:   fmt.Sprintf("The largest contiguous area in %s is %d tiles of %s.", g.Name, area, color),
	}
}

// ApplyRule asks for the result of applying a row rule to g.
func ApplyRule(g grid.Grid, rule grid.ColorRowRule) QA {
	return QA{
		Question: fmt.Sprintf("%s What does %s look like after applying this rule?", rule.Describe(), g.Name),
		Answer:   fmt.Sprintf("After applying the rule, %s is: %s", g.Name, grid.FormatCells(rule.Apply(g).Cells)),
	}
}
