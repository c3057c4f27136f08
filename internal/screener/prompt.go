package screener

import (
	"fmt"
	"strings"

	_ "embed"
)

//go:embed instructions.md
var rankingInstructions string

// BuildRankingRequest combines the job description and the resumes, in upload
// order, into the one-shot ranking request. The function is pure: identical
// inputs produce byte-identical output.
func BuildRankingRequest(job string, resumes []string) string {
	var b strings.Builder

	b.WriteString("JOB DESCRIPTION:\n")
	b.WriteString(job)
	b.WriteString("\n\n")

	for i, resume := range resumes {
		fmt.Fprintf(&b, "CV #%d:\n---\n%s\n---\n\n", i+1, resume)
	}

	b.WriteString(rankingInstructions)

	return b.String()
}
