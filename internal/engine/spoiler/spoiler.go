// Package spoiler renders the human readable log of a finished result
package spoiler

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/KirkDiggler/rpg-rando/internal/entities/rando"
	"github.com/KirkDiggler/rpg-rando/internal/logic"
)

// Section headers, also used by the CLI to color the output
const (
	HeaderSettings    = "SETTINGS"
	HeaderTransitions = "TRANSITIONS"
	HeaderProgression = "PROGRESSION ITEMS"
	HeaderItems       = "ALL ITEMS"
	HeaderShops       = "SHOPS"
)

// Build renders the spoiler log of one player's result
func Build(world *logic.Database, result *rando.Result) string {
	var sb strings.Builder

	writeSettings(&sb, result)
	writeTransitions(&sb, result)
	writeProgression(&sb, world, result)
	writeItems(&sb, world, result)

	return sb.String()
}

func writeSettings(sb *strings.Builder, result *rando.Result) {
	settings := result.Settings
	fmt.Fprintf(sb, "%s\n", HeaderSettings)
	fmt.Fprintf(sb, "Player: %s (%d of %d)\n", result.Nickname(result.PlayerID), result.PlayerID+1, result.Players)
	fmt.Fprintf(sb, "Seed: %d\n", result.Seed)
	fmt.Fprintf(sb, "Attempts: %d\n", result.Attempts)
	fmt.Fprintf(sb, "Pools: %s\n", strings.Join(settings.Pools, ", "))
	if len(settings.Skips) > 0 {
		fmt.Fprintf(sb, "Skips: %s\n", strings.Join(settings.Skips, ", "))
	}
	fmt.Fprintf(sb, "Transitions: %s\n", mode(&settings))
	fmt.Fprintf(sb, "Start: %s\n", result.StartName)
	if len(result.StartItems) > 0 {
		fmt.Fprintf(sb, "Start items: %s\n", strings.Join(result.StartItems, ", "))
	}
	if settings.Cursed {
		sb.WriteString("Cursed: yes\n")
	}
	if settings.DuplicateMajorItems {
		sb.WriteString("Duplicate major items: yes\n")
	}
	sb.WriteString("\n")
}

func mode(settings *rando.Settings) string {
	switch {
	case settings.RandomizeAreas:
		return "areas"
	case settings.RandomizeRooms && settings.ConnectAreas:
		return "rooms, connected areas"
	case settings.RandomizeRooms:
		return "rooms"
	}
	return "vanilla"
}

func writeTransitions(sb *strings.Builder, result *rando.Result) {
	if len(result.TransitionPlacements) == 0 {
		return
	}

	fmt.Fprintf(sb, "%s\n", HeaderTransitions)
	for _, from := range slices.Sorted(maps.Keys(result.TransitionPlacements)) {
		fmt.Fprintf(sb, "%s ---> %s\n", from, result.TransitionPlacements[from])
	}
	sb.WriteString("\n")
}

func writeProgression(sb *strings.Builder, world *logic.Database, result *rando.Result) {
	fmt.Fprintf(sb, "%s\n", HeaderProgression)
	for _, p := range result.Placements() {
		if !world.IsProgression(p.Item.Name) {
			continue
		}
		fmt.Fprintf(sb, "(%d) %s\n", result.LocationOrder[p.Location], line(world, result, p))
	}
	sb.WriteString("\n")
}

func writeItems(sb *strings.Builder, world *logic.Database, result *rando.Result) {
	areas := make(map[string][]rando.Placement)
	shops := make(map[string][]rando.Placement)
	for _, p := range result.Placements() {
		if p.Location.Player != result.PlayerID {
			continue
		}
		def, ok := world.Location(p.Location.Name)
		switch {
		case ok && def.Shop:
			shops[def.Name] = append(shops[def.Name], p)
		case ok:
			areas[def.Area] = append(areas[def.Area], p)
		default:
			areas[""] = append(areas[""], p)
		}
	}

	fmt.Fprintf(sb, "%s\n", HeaderItems)
	writeGroups(sb, world, result, areas)
	if len(shops) > 0 {
		fmt.Fprintf(sb, "%s\n", HeaderShops)
		writeGroups(sb, world, result, shops)
	}
}

func writeGroups(sb *strings.Builder, world *logic.Database, result *rando.Result, groups map[string][]rando.Placement) {
	for _, name := range slices.Sorted(maps.Keys(groups)) {
		title := name
		if title == "" {
			title = "Unknown"
		}
		fmt.Fprintf(sb, "%s:\n", title)
		for _, p := range groups[name] {
			fmt.Fprintf(sb, "  %s\n", line(world, result, p))
		}
	}
	sb.WriteString("\n")
}

// line formats item<---at--->location with the price paid, if any
func line(world *logic.Database, result *rando.Result, p rando.Placement) string {
	s := fmt.Sprintf("%s<---at--->%s", p.Item, p.Location)
	if cost, ok := result.ShopCosts[p.Item]; ok && world.IsShop(p.Location.Name) {
		return fmt.Sprintf("%s (%d geo)", s, cost)
	}
	if cost, ok := result.VariableCosts[p.Location]; ok {
		if def, ok := world.Location(p.Location.Name); ok {
			return fmt.Sprintf("%s (%d %s)", s, cost, def.CostType)
		}
	}
	return s
}
