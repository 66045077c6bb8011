package coach

import (
	"fmt"
	"strings"

	"github.com/abhisek/aipath/internal/careers"
	"github.com/abhisek/aipath/internal/scoring"
)

const systemPrompt = `You are a practical, encouraging career coach for people moving into AI. You give specific, realistic advice and never invent URLs.`

func buildUserMessage(res scoring.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Recommended path: %s\n", res.Profile.Title)
	fmt.Fprintf(&b, "Profile: %s\n", res.Profile.Description)

	b.WriteString("\nAssessment scores (higher is a closer match):\n")
	top := res.Scores.Max()
	for _, st := range res.Scores.Ranked() {
		fmt.Fprintf(&b, "- %s: %d/%d\n", careers.DisplayName(st.Career), st.Score, top)
	}

	b.WriteString("\nKey skills for this path:\n")
	for _, s := range res.Profile.Skills {
		fmt.Fprintf(&b, "- %s\n", s)
	}

	if runnerUp, ok := secondPlace(res); ok {
		fmt.Fprintf(&b, "\nSecond closest match: %s. Mention how the two paths overlap if it helps.\n",
			careers.DisplayName(runnerUp))
	}

	b.WriteString(`
Instructions:
1. Write a two or three sentence summary of why this path fits, based on the scores.
2. Give exactly three concrete actions for the first month. Each must be doable by one person in a week or two.
3. Suggest two to four well-known resources. Name them only; do not include links.
4. Name one common pitfall for beginners on this path.`)

	return b.String()
}

// secondPlace returns the runner-up career when it scored above zero.
func secondPlace(res scoring.Result) (careers.ID, bool) {
	ranked := res.Scores.Ranked()
	for _, st := range ranked {
		if st.Career != res.Career {
			return st.Career, st.Score > 0
		}
	}
	return 0, false
}
