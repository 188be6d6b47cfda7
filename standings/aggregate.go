package standings

import (
	"fmt"

	"github.com/cprater/football-pickem-backend-sub000/models"
)

// Aggregate folds all picks for a league into one accumulator row per
// participant. Every participant gets a row, picks or not. Picks whose game
// or picked team failed to resolve are skipped rather than failing the whole
// computation, and picks from users who are no longer participants are
// ignored: standings reflect current membership.
//
// When weekFilter is non-nil only picks whose game falls in that week are
// folded.
func Aggregate(
	participants []models.User,
	picks []*models.Pick,
	scoringType models.ScoringType,
	weekFilter *int,
) (map[int]*models.StandingsRow, error) {
	rows := make(map[int]*models.StandingsRow, len(participants))
	for i := range participants {
		u := participants[i]
		rows[u.ID] = &models.StandingsRow{
			UserID:       u.ID,
			User:         &u,
			WeeklyPoints: make(map[int]int),
		}
	}

	for _, pick := range picks {
		game := pick.Game
		if game == nil {
			continue
		}
		if pick.PickType == models.PickTypeOverUnder {
			if pick.OverUnderSide == nil {
				continue
			}
		} else if pick.PickedTeam == nil {
			continue
		}

		row, ok := rows[pick.UserID]
		if !ok {
			continue
		}
		if weekFilter != nil && game.Week != *weekFilter {
			continue
		}

		row.TotalPicks++

		verdict, err := Evaluate(pick, game)
		if err != nil {
			return nil, fmt.Errorf("evaluate pick %d: %w", pick.ID, err)
		}
		if verdict != Correct {
			continue
		}
		row.CorrectPicks++

		points, err := Points(pick, scoringType, verdict)
		if err != nil {
			return nil, fmt.Errorf("score pick %d: %w", pick.ID, err)
		}
		row.TotalPoints += points
		row.WeeklyPoints[game.Week] += points
	}

	for _, row := range rows {
		if row.TotalPicks > 0 {
			row.WinPercentage = float64(row.CorrectPicks) / float64(row.TotalPicks)
		}
	}
	return rows, nil
}
