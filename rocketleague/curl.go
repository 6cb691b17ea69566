package rocketleague

import (
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strings"
)

// Curl renders the plan as an equivalent curl command line. Headers are
// written in sorted order so the output is stable.
func (p RequestPlan) Curl(header http.Header) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "curl -X %s", p.Method)

	keys := make([]string, 0, len(header))
	for k := range header {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		for _, v := range header[k] {
			fmt.Fprintf(&sb, " -H %s", shellQuote(k+": "+v))
		}
	}

	if p.Body != nil {
		data, err := json.Marshal(p.Body)
		if err == nil {
			fmt.Fprintf(&sb, " -H %s -d %s", shellQuote("Content-Type: application/json"), shellQuote(string(data)))
		}
	}

	fmt.Fprintf(&sb, " %s", shellQuote(p.URL))
	return sb.String()
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
