package views

import (
	"fmt"
	"strings"
)

type RoutineItemData struct {
	ID       string
	Name     string
	Duration string
	TimeLeft string
	Reminder string
	Tracking bool
	Done     bool
	Notify   bool
}

type RoutineListData struct {
	Items    []RoutineItemData
	Cursor   int
	Sorting  bool
	Progress string
}

type RoutineDetailData struct {
	ID           string
	Name         string
	Duration     string
	TimeLeft     string
	Reminder     string
	State        string
	ProgressView string
	ProgressPct  int
}

type HelpPanelData struct {
	Bindings     []string
	HelpView     string
	CommandsView string
}

func RenderRoutineList(data RoutineListData) string {
	var b strings.Builder
	if data.Sorting {
		b.WriteString("routines (sorting: J/K move, s done):\n")
	} else {
		b.WriteString("routines:\n")
	}
	if len(data.Items) == 0 {
		b.WriteString("(no routines, press / and type add <name>)")
		return b.String()
	}
	for i, item := range data.Items {
		cursor := " "
		if i == data.Cursor {
			cursor = ">"
		}
		line := fmt.Sprintf("%s %2d. %s %s", cursor, i+1, statusBadge(item), item.Name)
		if t := timing(item); t != "" {
			line += "  " + t
		}
		if item.Reminder != "" {
			line += " @" + item.Reminder
		}
		switch {
		case item.Done:
			line = doneStyle.Render(line)
		case item.Tracking:
			line = activeStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	if data.Progress != "" {
		b.WriteString("\n" + data.Progress)
	}
	return strings.TrimRight(b.String(), "\n")
}

func RenderRoutineDetail(data RoutineDetailData) string {
	if strings.TrimSpace(data.ID) == "" {
		return "details:\n(no selection)"
	}
	duration := data.Duration
	if duration == "" {
		duration = "untimed"
	}
	var b strings.Builder
	b.WriteString("details:\n")
	b.WriteString(fmt.Sprintf("name: %s\n", data.Name))
	b.WriteString(fmt.Sprintf("id: %s\n", data.ID))
	b.WriteString(fmt.Sprintf("state: %s\n", data.State))
	b.WriteString(fmt.Sprintf("duration: %s\n", duration))
	if data.TimeLeft != "" {
		b.WriteString(fmt.Sprintf("time left: %s\n", data.TimeLeft))
	}
	if data.Reminder != "" {
		b.WriteString(fmt.Sprintf("reminder: %s\n", data.Reminder))
	}
	if data.ProgressView != "" {
		b.WriteString(fmt.Sprintf("progress: %s %d%%", data.ProgressView, data.ProgressPct))
	}
	return strings.TrimRight(b.String(), "\n")
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return ""
	}
	return "\ncommand:\n" + inputView
}

// RenderNotifications lists routines whose timer ran out and that still
// await acknowledgement.
func RenderNotifications(names []string) string {
	if len(names) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("finished:\n")
	for _, name := range names {
		b.WriteString("- " + name + "\n")
	}
	b.WriteString("[n] acknowledge selected  [c] clear all")
	return b.String()
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	b.WriteString("\nhelp:\n")
	b.WriteString(strings.Join(data.Bindings, "\n"))
	if data.HelpView != "" {
		b.WriteString("\n\n" + data.HelpView)
	}
	if data.CommandsView != "" {
		b.WriteString("\n\n" + data.CommandsView)
	}
	return b.String()
}

func statusBadge(item RoutineItemData) string {
	switch {
	case item.Notify:
		return "[!]"
	case item.Done:
		return "[x]"
	case item.Tracking:
		return "[>]"
	default:
		return "[ ]"
	}
}

func timing(item RoutineItemData) string {
	switch {
	case item.TimeLeft != "" && item.Duration != "":
		return item.TimeLeft + " / " + item.Duration
	case item.Duration != "":
		return item.Duration
	default:
		return ""
	}
}
