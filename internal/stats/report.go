package stats

import (
	"context"

	"github.com/verte-zerg/easypass/internal/model"
	"github.com/verte-zerg/easypass/internal/store"
	"github.com/verte-zerg/easypass/internal/strength"
)

// Levels lists strength levels from weakest to strongest.
var Levels = []strength.Level{strength.Weak, strength.Medium, strength.Strong, strength.VeryStrong}

// Report contains precomputed data for history rendering.
type Report struct {
	Entries   []model.HistoryEntry
	Total     int
	Favorites int
	Counts    map[strength.Level]int
	Unknown   int
}

// BuildReport loads the filtered entries and the strength breakdown of the
// whole history.
func BuildReport(ctx context.Context, st *store.Store, filter model.HistoryFilter) (Report, error) {
	entries, err := st.ListEntries(ctx, filter)
	if err != nil {
		return Report{}, err
	}
	labelCounts, err := st.StrengthCounts(ctx)
	if err != nil {
		return Report{}, err
	}
	favorites, err := st.ListEntries(ctx, model.HistoryFilter{FavoritesOnly: true})
	if err != nil {
		return Report{}, err
	}

	report := Report{
		Entries:   entries,
		Favorites: len(favorites),
		Counts:    make(map[strength.Level]int, len(Levels)),
	}
	for label, n := range labelCounts {
		report.Total += n
		level, err := strength.ParseLabel(label)
		if err != nil {
			report.Unknown += n
			continue
		}
		report.Counts[level] += n
	}
	return report, nil
}
