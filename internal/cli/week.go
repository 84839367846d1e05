package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/minhtpham/mealgrid/internal/constants"
	"github.com/minhtpham/mealgrid/internal/planner"
)

type WeekCmd struct {
	Start string `help:"Anchor date (YYYY-MM-DD); the containing week is shown." placeholder:"DATE"`
	Prev  bool   `help:"Show the week before the anchor." xor:"page"`
	Next  bool   `help:"Show the week after the anchor." xor:"page"`
}

func (cmd *WeekCmd) Run(ctx *Context) error {
	window, err := resolveWindow(cmd.Start, cmd.Prev, cmd.Next)
	if err != nil {
		return err
	}

	bg := context.Background()
	cat := ctx.LoadCatalog(bg)
	session := planner.NewSessionAt(cat, window)
	offline := ctx.LoadWeek(bg, session)

	fmt.Print(RenderWeekGrid(session))
	if offline {
		fmt.Println("\n(server unreachable; showing cached snapshot)")
	}
	return nil
}

func resolveWindow(start string, prev, next bool) (planner.WeekWindow, error) {
	anchor := time.Now()
	if start != "" {
		parsed, err := time.ParseInLocation(constants.DateFormat, start, time.Local)
		if err != nil {
			return planner.WeekWindow{}, fmt.Errorf("invalid start date %q (want YYYY-MM-DD): %w", start, err)
		}
		anchor = parsed
	}

	window := planner.NewWeekWindow(anchor)
	switch {
	case prev:
		window = window.Shift(-constants.DaysPerWeek)
	case next:
		window = window.Shift(constants.DaysPerWeek)
	}
	return window, nil
}

// RenderWeekGrid formats the session's week as a text table: one column per
// day, one row per meal. Pure function of the session, so it is testable
// without a terminal.
func RenderWeekGrid(session *planner.Session) string {
	const cellWidth = 16

	days := session.Window.Days()

	var b strings.Builder
	fmt.Fprintf(&b, "Week %s – %s\n\n", planner.FormatDisplay(days[0]), planner.FormatDisplay(days[len(days)-1]))

	b.WriteString(pad("", 10))
	for i, day := range days {
		b.WriteString(pad(fmt.Sprintf("%s %s", planner.WeekdayLabel(i), planner.FormatDisplay(day)), cellWidth))
	}
	b.WriteString("\n")

	for _, meal := range constants.MealTypes {
		b.WriteString(pad(constants.MealLabel(meal), 10))
		for i := range days {
			key := planner.SlotKey{Date: session.Window.DayISO(i), Meal: meal}
			a := session.Store.Get(key)
			cell := "-"
			if !a.Empty() {
				cell = a.Recipe.Title
			}
			b.WriteString(pad(cell, cellWidth))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return string(runes[:width-2]) + "… "
	}
	return s + strings.Repeat(" ", width-len(runes))
}
