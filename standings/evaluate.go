package standings

import (
	"fmt"

	"github.com/cprater/football-pickem-backend-sub000/models"
)

// Verdict is the outcome of judging a single pick against its game.
type Verdict int

const (
	// Undecided means the game is not final yet (or a score is missing),
	// so the pick contributes nothing to points or correct counts.
	Undecided Verdict = iota
	Incorrect
	Correct
)

func (v Verdict) String() string {
	switch v {
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	default:
		return "undecided"
	}
}

// Evaluate judges a pick against its game. A game that is not final, or is
// final but missing a score, yields Undecided. Ties and pushes are judged
// Incorrect for every picker: a tied final score rewards no straight pick,
// and landing exactly on the spread or the total line loses rather than
// voiding the pick.
func Evaluate(pick *models.Pick, game *models.Game) (Verdict, error) {
	if game.Status != models.GameStatusFinal || game.HomeScore == nil || game.AwayScore == nil {
		return Undecided, nil
	}

	home := *game.HomeScore
	away := *game.AwayScore

	switch pick.PickType {
	case models.PickTypeStraight:
		if pick.PickedTeamID == nil {
			return Incorrect, nil
		}
		if home == away {
			return Incorrect, nil
		}
		winner := game.AwayTeamID
		if home > away {
			winner = game.HomeTeamID
		}
		if *pick.PickedTeamID == winner {
			return Correct, nil
		}
		return Incorrect, nil

	case models.PickTypeSpread:
		if pick.PickedTeamID == nil || game.PointSpread == nil {
			return Incorrect, nil
		}
		// The spread is home-relative, so a favored home team gives up
		// points before the comparison.
		adjustedHome := float64(home) + *game.PointSpread
		switch *pick.PickedTeamID {
		case game.HomeTeamID:
			if adjustedHome > float64(away) {
				return Correct, nil
			}
		case game.AwayTeamID:
			if float64(away) > adjustedHome {
				return Correct, nil
			}
		}
		return Incorrect, nil

	case models.PickTypeOverUnder:
		if pick.OverUnderSide == nil || game.OverUnder == nil {
			return Incorrect, nil
		}
		total := float64(home + away)
		switch *pick.OverUnderSide {
		case models.SideOver:
			if total > *game.OverUnder {
				return Correct, nil
			}
		case models.SideUnder:
			if total < *game.OverUnder {
				return Correct, nil
			}
		}
		return Incorrect, nil

	default:
		return Undecided, fmt.Errorf("unknown pick type %q", pick.PickType)
	}
}
