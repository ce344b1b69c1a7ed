package models

import "strings"

type HabitIcon struct {
	Icon  string `json:"icon"`
	Label string `json:"label"`
}

var HabitIcons = []HabitIcon{
	{Icon: "💧", Label: "Water"},
	{Icon: "🏃", Label: "Exercise"},
	{Icon: "📚", Label: "Reading"},
	{Icon: "🧘", Label: "Meditation"},
	{Icon: "💤", Label: "Sleep"},
	{Icon: "🥗", Label: "Healthy eating"},
	{Icon: "✍️", Label: "Writing"},
	{Icon: "🎯", Label: "Goals"},
	{Icon: "💪", Label: "Strength"},
	{Icon: "🧠", Label: "Learning"},
	{Icon: "🚭", Label: "No smoking"},
	{Icon: "🍷", Label: "No alcohol"},
	{Icon: "📱", Label: "Screen time"},
	{Icon: "🌅", Label: "Wake early"},
	{Icon: "💊", Label: "Medicine"},
	{Icon: "🎨", Label: "Creative"},
}

// IconForLabel resolves a catalog label (case-insensitive) or an icon token
// to its icon token.
func IconForLabel(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, ic := range HabitIcons {
		if ic.Icon == s || strings.EqualFold(ic.Label, s) {
			return ic.Icon, true
		}
	}
	return "", false
}
