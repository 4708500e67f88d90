package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/existflow/angple/internal/api"
	"github.com/existflow/angple/internal/recommend"
)

var trendsCmd = &cobra.Command{
	Use:   "trends [period]",
	Short: "Show the AI trend card for a period",
	Long: `Show the AI recommendation trend for a period.

Without a period the default tab for the current hour is used
(6h overnight, 3h early morning, 1h otherwise).

Periods: 1h 3h 6h 12h 24h 48h`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTrends,
}

func runTrends(cmd *cobra.Command, args []string) error {
	period := recommend.TabVisibilityAt(time.Now().Hour()).DefaultTab
	if len(args) == 1 {
		p, err := recommend.ParsePeriod(args[0])
		if err != nil {
			return err
		}
		period = p
	}

	ctx, cancel := commandContext()
	defer cancel()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	trend, err := s.client.GetAITrend(ctx, period)
	if errors.Is(err, api.ErrTokenMissing) || api.IsUnauthorized(err) {
		return fmt.Errorf("%w: run 'angple auth register' first", err)
	}
	if err != nil {
		return fmt.Errorf("failed to load trend: %w", err)
	}

	step := recommend.BadgeStep(trend.Stats.TotalRecommends)
	labelColor.Printf("%s trend", strings.ToUpper(string(period)))
	if trend.PeriodText != "" {
		dimColor.Printf(" (%s)", trend.PeriodText)
	}
	fmt.Println()
	fmt.Println(trend.Summary)
	fmt.Printf("Keywords: %s\n", strings.Join(trend.Keywords, ", "))
	fmt.Printf("Recommends: %s (step %d) · Comments: %s · Score: %.1f\n",
		recommend.FormatNumber(int64(trend.Stats.TotalRecommends)), step,
		recommend.FormatNumber(int64(trend.Stats.TotalComments)), trend.Score)
	return nil
}
