package formatter

import (
	"fmt"
	"strings"

	"github.com/vibesync/vibesync/internal/board"
	"github.com/vibesync/vibesync/internal/syncer"
)

// FormatPlan renders the dry-run report for all mappings.
func FormatPlan(plans []syncer.MappingPlan) string {
	var b strings.Builder
	for i, plan := range plans {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(Header(fmt.Sprintf("%s → %s", plan.Mapping.GitHubRepo, plan.Mapping.VibeProjectID)))
		b.WriteString("\n")
		fmt.Fprintf(&b, "GitHub issues:      %d\n", plan.IssueCount)
		fmt.Fprintf(&b, "Existing tasks:     %d\n", plan.TaskCount)
		fmt.Fprintf(&b, "New issues to sync: %s\n", Bold(fmt.Sprintf("%d", len(plan.NewIssues))))

		if len(plan.NewIssues) == 0 {
			b.WriteString(Dim("No new issues to sync.") + "\n")
			continue
		}
		b.WriteString("Would create tasks for:\n")
		for _, issue := range plan.NewIssues {
			fmt.Fprintf(&b, "  %s %s\n", Good(fmt.Sprintf("#%d", issue.Number)), issue.Title)
		}
	}
	return b.String()
}

// FormatTaskList renders tasks pending deletion for the clear command.
func FormatTaskList(tasks []board.Task) string {
	var b strings.Builder
	for _, task := range tasks {
		fmt.Fprintf(&b, "  - %s %s\n", task.Title, Dim("("+task.ID+")"))
	}
	return b.String()
}
