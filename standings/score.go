package standings

import (
	"fmt"

	"github.com/cprater/football-pickem-backend-sub000/models"
)

// Points returns the point value a correct pick is worth under the league's
// scoring type. Incorrect and undecided picks are worth nothing regardless.
//
// Survivor leagues currently score like straight leagues: the elimination
// state machine is intentionally not implemented.
func Points(pick *models.Pick, scoringType models.ScoringType, verdict Verdict) (int, error) {
	if verdict != Correct {
		return 0, nil
	}

	switch scoringType {
	case models.ScoringConfidence:
		if pick.ConfidencePoints != nil {
			return *pick.ConfidencePoints, nil
		}
		return 1, nil
	case models.ScoringStraight, models.ScoringSurvivor:
		return 1, nil
	default:
		return 0, fmt.Errorf("unknown scoring type %q", scoringType)
	}
}
