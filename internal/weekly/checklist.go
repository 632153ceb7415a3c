package weekly

import (
	"strconv"
	"strings"
)

// PositiveItems are the suggested "tailwind" checklist entries.
var PositiveItems = []string{
	"Focus time grew",
	"Focus quality was good (got deep)",
	"Felt good",
	"Was not interrupted",
	"Got up early",
	"Started quickly",
	"Breaks worked well",
	"A new trick paid off",
	"Broke through a hard part",
	"Found myself focused without trying",
	"Kept going longer than before",
	"The focus habit is sticking",
	"Enjoyed the reward",
	"Was in good health",
	"Switched moods well",
}

// ChallengeItems are the suggested "storm" checklist entries.
var ChallengeItems = []string{
	"Picked up the phone",
	"Could not keep focus",
	"Was sleepy or tired",
	"Got pulled into other plans",
	"Was not in the mood",
	"Took long to get started",
	"Got bored repeating the same thing",
	"Breaks ran too long",
	"Gave in to temptation (videos, social media)",
	"Noise or surroundings got in the way",
	"Was not feeling well",
	"Got priorities wrong",
	"The goal was fuzzy",
}

// Normalize trims entries, drops empty ones and removes duplicates while
// keeping first-seen order.
func Normalize(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" || seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
	}
	return out
}

// Resolve maps 1-based catalogue indices like "3" onto the catalogue entry,
// passing any other text through unchanged.
func Resolve(catalogue []string, items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		it = strings.TrimSpace(it)
		if n, ok := catalogueIndex(it, len(catalogue)); ok {
			it = catalogue[n]
		}
		out = append(out, it)
	}
	return Normalize(out)
}

func catalogueIndex(s string, size int) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > size {
		return 0, false
	}
	return n - 1, true
}
