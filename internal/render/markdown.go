package render

import (
	"fmt"
	"strings"
)

var tierEmoji = map[Tier]string{
	TierHigh: "🟢",
	TierMid:  "🟡",
	TierLow:  "🔴",
}

var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

// Markdown renders the view for Telegram (legacy Markdown parse mode).
func Markdown(v View) string {
	esc := markdownEscaper.Replace

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🗺 *%s*\n", esc(v.Title)))
	sb.WriteString(fmt.Sprintf("%s %s\n", tierEmoji[v.Badge.Tier], esc(v.Badge.Label)))
	sb.WriteString(fmt.Sprintf("💰 총 예상 비용: %s\n\n", esc(v.TotalCost)))

	sb.WriteString(fmt.Sprintf("💡 *Planner's Comment:*\n%s\n", esc(v.Comment)))
	marker := "✅"
	if v.ReasonTone == ToneWarning {
		marker = "⚠️"
	}
	sb.WriteString(fmt.Sprintf("%s _판단 근거: %s_\n", marker, esc(v.Reason)))

	for _, day := range v.Days {
		sb.WriteString(fmt.Sprintf("\n📅 *%s*\n", esc(day.Heading)))
		for _, act := range day.Activities {
			sb.WriteString(fmt.Sprintf("%s %s · *%s*", act.Icon, esc(act.Time), esc(act.Place)))
			if act.Cost != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", esc(act.Cost)))
			}
			sb.WriteString("\n")
			if act.Description != "" {
				sb.WriteString(fmt.Sprintf("   %s\n", esc(act.Description)))
			}
		}
	}
	return sb.String()
}
