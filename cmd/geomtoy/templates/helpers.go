package templates

import (
	"strconv"
	"strings"
)

func dotID(s string) string {
	return strconv.Quote(s)
}

func joinedStrings(items []string, sep string) string {
	var sb strings.Builder
	for i, item := range items {
		sb.WriteString(item)
		if i < len(items)-1 {
			sb.WriteString(sep)
		}
	}
	return sb.String()
}

func nodeLabel(n Node) string {
	var sb strings.Builder
	sb.WriteString(n.Label)
	if len(n.Events) > 0 {
		sb.WriteString("\n")
		sb.WriteString(joinedStrings(n.Events, ", "))
	}
	return sb.String()
}

func edgeLabel(e Edge) string {
	return e.Pattern + " " + e.Callback + " @" + strconv.Itoa(e.Priority)
}
