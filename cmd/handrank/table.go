package main

import (
	"fmt"
	"time"

	"github.com/lox/handrank/internal/fileutil"
	"github.com/lox/handrank/poker"
)

// TableCmd builds the lookup tables and prints their shape.
type TableCmd struct {
	Out string `short:"o" type:"path" help:"Also write the table summary as JSON to this file"`
}

type tableSummary struct {
	FlushKeys    int               `json:"flush_keys"`
	UnsuitedKeys int               `json:"unsuited_keys"`
	BuildTime    string            `json:"build_time"`
	Categories   []categorySummary `json:"categories"`
}

type categorySummary struct {
	Category poker.Category `json:"category"`
	Name     string         `json:"name"`
	MinRank  poker.HandRank `json:"min_rank"`
	MaxRank  poker.HandRank `json:"max_rank"`
	Classes  int            `json:"classes"`
}

func (c *TableCmd) Run(g *Globals) error {
	start := time.Now()
	table := poker.NewLookupTable()
	took := time.Since(start)
	eval := poker.NewEvaluator(table)

	summary := tableSummary{
		FlushKeys:    table.FlushLen(),
		UnsuitedKeys: table.UnsuitedLen(),
		BuildTime:    took.String(),
	}
	low := poker.HandRank(1)
	for _, high := range table.Boundaries() {
		category, err := eval.CategoryOf(high)
		if err != nil {
			return err
		}
		summary.Categories = append(summary.Categories, categorySummary{
			Category: category,
			Name:     eval.CategoryName(category),
			MinRank:  low,
			MaxRank:  high,
			Classes:  int(high-low) + 1,
		})
		low = high + 1
	}

	fmt.Fprintln(g.Out, headerStyle.Render("Lookup table"))
	fmt.Fprintln(g.Out, labelStyle.Render("Flush"), summary.FlushKeys, "keys")
	fmt.Fprintln(g.Out, labelStyle.Render("Unsuited"), summary.UnsuitedKeys, "keys")
	fmt.Fprintln(g.Out, labelStyle.Render("Built in"), infoStyle.Render(took.Round(time.Microsecond).String()))
	fmt.Fprintln(g.Out)
	for _, cat := range summary.Categories {
		fmt.Fprintf(g.Out, "%d  %-16s %4d..%-4d  %4d classes\n",
			cat.Category, cat.Name, cat.MinRank, cat.MaxRank, cat.Classes)
	}

	if c.Out != "" {
		if err := fileutil.WriteJSON(c.Out, summary); err != nil {
			return err
		}
		fmt.Fprintln(g.Out, infoStyle.Render("Wrote "+c.Out))
	}
	return nil
}
