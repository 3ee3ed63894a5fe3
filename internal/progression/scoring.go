package progression

// Scoring weights applied by ComputeFinalScore.
const (
	TimeBonusPerSecond = 10
	CollectibleBonus   = 100
	ObjectiveBonus     = 500
)

// Star thresholds applied by StarsFor.
const (
	ThreeStarScore = 90
	TwoStarScore   = 70
	MaxStars       = 3
)

// ComputeFinalScore converts an attempt into the final score for its level:
//
//	score + max(0, timeLimit-elapsed)*10 + collectibles*100 + completedObjectives*500
//
// A nil content contributes no time bonus. Neither argument is modified.
func ComputeFinalScore(a Attempt, c *Content) float64 {
	final := a.Score
	if c != nil {
		if remaining := c.TimeLimit - a.Elapsed; remaining > 0 {
			final += remaining * TimeBonusPerSecond
		}
	}
	final += float64(a.Collectibles * CollectibleBonus)
	final += float64(a.CompletedObjectives() * ObjectiveBonus)
	return final
}

// StarsFor converts a final score into a 1-3 star rating.
// Every completion earns at least one star, including a score of zero.
func StarsFor(score float64) int {
	switch {
	case score >= ThreeStarScore:
		return 3
	case score >= TwoStarScore:
		return 2
	default:
		return 1
	}
}
