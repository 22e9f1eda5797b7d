// Package outcome scores the end of a run when the crew attempts to found
// a colony. Scoring is a pure function of its inputs.
package outcome

import (
	"fmt"

	"github.com/nathoo/arkfall/engine/crew"
	"github.com/nathoo/arkfall/types"
)

// Rating is the letter grade of a colony attempt.
type Rating string

const (
	RatingS Rating = "S"
	RatingA Rating = "A"
	RatingB Rating = "B"
	RatingC Rating = "C"
	RatingF Rating = "F"
)

// Score weights and rating thresholds.
const (
	survivorWeight  = 20
	techWeight      = 10
	knowledgeWeight = 5
	stressWeight    = 10

	thresholdS = 120
	thresholdA = 90
	thresholdB = 60
)

// Inputs are everything the scorer reads.
type Inputs struct {
	Survivors  int
	Total      int
	MeanStress float64
	TechLevel  int
	Knowledge  int
	Success    bool // decided by the planet-suitability collaborator

	// Display buckets.
	Symbiotes int
	Cyborgs   int
	Touched   int
}

// Report is the verdict of a colony attempt.
type Report struct {
	Inputs
	Score  float64
	Rating Rating
}

// Score computes the colony score and rating.
// score = survivors*20 + tech*10 + knowledge*5 - meanStress*10; a failed
// landing is always F.
func Score(in Inputs) Report {
	score := float64(in.Survivors*survivorWeight+in.TechLevel*techWeight+in.Knowledge*knowledgeWeight) -
		in.MeanStress*stressWeight
	return Report{Inputs: in, Score: score, Rating: rate(score, in.Success)}
}

func rate(score float64, success bool) Rating {
	switch {
	case !success:
		return RatingF
	case score >= thresholdS:
		return RatingS
	case score >= thresholdA:
		return RatingA
	case score >= thresholdB:
		return RatingB
	default:
		return RatingC
	}
}

// FromState gathers scorer inputs from a run.
func FromState(s *types.State, success bool) Inputs {
	return Inputs{
		Survivors:  crew.LivingCount(s.Crew),
		Total:      len(s.Crew),
		MeanStress: crew.MeanStress(s.Crew),
		TechLevel:  len(s.Run.Upgrades),
		Knowledge:  s.Run.Knowledge,
		Success:    success,
		Symbiotes:  crew.CountTag(s.Crew, types.TagHiveMind),
		Cyborgs:    crew.CountTag(s.Crew, types.TagMachineLink),
		Touched:    crew.CountTag(s.Crew, types.TagWrongPlaceSurvivor),
	}
}

// Lines renders the report as narration.
func (r Report) Lines() []string {
	lines := []string{
		fmt.Sprintf("Survivors: %d of %d", r.Survivors, r.Total),
		fmt.Sprintf("Tech level: %d  Colony knowledge: %d  Mean stress: %.1f", r.TechLevel, r.Knowledge, r.MeanStress),
	}
	if r.Symbiotes+r.Cyborgs+r.Touched > 0 {
		lines = append(lines, fmt.Sprintf("Symbiotes: %d  Cyborgs: %d  Touched: %d", r.Symbiotes, r.Cyborgs, r.Touched))
	}
	lines = append(lines, fmt.Sprintf("Score: %.0f  Rating: %s", r.Score, r.Rating))
	return lines
}
