package services

import "math/rand"

// Decorative badges sampled onto ranking rows. Purely cosmetic: nothing in
// scoring or ordering reads them, which keeps the core ranking deterministic.
var achievementPool = []string{
	"💡-bright-minds",
	"🐢-slow-but-steady",
	"🔥-on-fire",
	"🧠-brains-in-action",
	"🎯-perfect-shot",
	"🕵️-bug-detectives",
	"🚀-explosive-start",
	"🍕-code-and-pizza",
	"🧃-hydrated-and-efficient",
	"🛠️-pro-debuggers",
	"😎-boss-level",
	"🧘-zen-coders",
	"🎉-submission-party",
	"🦾-no-fear-of-hard",
	"📈-rising-fast",
	"🧩-puzzle-solved",
	"👑-ranking-royalty",
	"💪-never-give-up",
	"🧤-spotless-run",
	"🎭-drama-and-glory",
}

// sampleAchievements picks 0 to 2 distinct badges. The global locked source
// is used so concurrent ranking requests do not race on a shared generator.
func sampleAchievements() []string {
	n := rand.Intn(3)
	if n == 0 {
		return []string{}
	}
	picked := rand.Perm(len(achievementPool))[:n]
	out := make([]string, 0, n)
	for _, i := range picked {
		out = append(out, achievementPool[i])
	}
	return out
}
