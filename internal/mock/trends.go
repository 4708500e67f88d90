package mock

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/existflow/angple/internal/model"
	"github.com/existflow/angple/internal/recommend"
)

//go:embed data/trends/*.json
var trendFiles embed.FS

// Trend loads the static AI trend card for period
func Trend(period recommend.Period) (*model.TrendData, error) {
	if !period.Valid() {
		return nil, fmt.Errorf("%w: %q", recommend.ErrUnknownPeriod, period)
	}

	data, err := trendFiles.ReadFile("data/trends/" + period.FileName() + ".json")
	if err != nil {
		return nil, fmt.Errorf("failed to read trend file: %w", err)
	}

	var trend model.TrendData
	if err := json.Unmarshal(data, &trend); err != nil {
		return nil, fmt.Errorf("failed to parse trend file %s: %w", period.FileName(), err)
	}
	return &trend, nil
}
