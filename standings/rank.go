package standings

import (
	"sort"

	"github.com/cprater/football-pickem-backend-sub000/models"
)

// Rank orders the rows descending by total points, breaking ties first on
// correct picks, then on win percentage, and finally on user id so the order
// is deterministic. Ranks are dense 1-based positions: rows that tie on
// every key still receive distinct sequential ranks.
func Rank(rows map[int]*models.StandingsRow) []*models.StandingsRow {
	sorted := make([]*models.StandingsRow, 0, len(rows))
	for _, row := range rows {
		sorted = append(sorted, row)
	}

	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.TotalPoints != b.TotalPoints {
			return a.TotalPoints > b.TotalPoints
		}
		if a.CorrectPicks != b.CorrectPicks {
			return a.CorrectPicks > b.CorrectPicks
		}
		if a.WinPercentage != b.WinPercentage {
			return a.WinPercentage > b.WinPercentage
		}
		return a.UserID < b.UserID
	})

	for i, row := range sorted {
		row.Rank = i + 1
	}
	return sorted
}

// Compute runs the full pipeline: aggregate then rank.
func Compute(
	participants []models.User,
	picks []*models.Pick,
	scoringType models.ScoringType,
	weekFilter *int,
) ([]*models.StandingsRow, error) {
	rows, err := Aggregate(participants, picks, scoringType, weekFilter)
	if err != nil {
		return nil, err
	}
	return Rank(rows), nil
}
