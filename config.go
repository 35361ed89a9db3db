package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/bitmark-inc/autonomy-trend/trend"
)

const (
	dateLayout = "2006-01-02"
	envPrefix  = "trend"
)

// bindEnv lets TREND_<KEY> override any key, dots read as underscores. Keys of
// the trend group carry the prefix twice: trend.workers is TREND_TREND_WORKERS.
func bindEnv(v *viper.Viper) {
	v.AutomaticEnv()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

// parseWeekday accepts a weekday name ("sunday", "Sun") or its number, 0 for Sunday.
func parseWeekday(s string) (time.Weekday, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return trend.DefaultWeekBoundary, nil
	}
	if n, err := strconv.Atoi(s); nil == err {
		if n < 0 || n > 6 {
			return 0, fmt.Errorf("%w: week boundary %d", trend.ErrInvalidDateMode, n)
		}
		return time.Weekday(n), nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := d.String()
		if strings.EqualFold(s, name) || strings.EqualFold(s, name[:3]) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: week boundary %q", trend.ErrInvalidDateMode, s)
}

// queryFromConfig reads the trend.* keys into a query.
func queryFromConfig(v *viper.Viper) (trend.Query, error) {
	q := trend.Query{
		Continent: v.GetString("trend.continent"),
		Dates: trend.DateSelection{
			Mode: trend.DateMode(strings.ToLower(v.GetString("trend.date_mode"))),
		},
	}

	if s := v.GetString("trend.date"); s != "" {
		date, err := time.Parse(dateLayout, s)
		if nil != err {
			return trend.Query{}, fmt.Errorf("%w: date %q", trend.ErrInvalidDateMode, s)
		}
		q.Dates.Date = date
	}

	boundary, err := parseWeekday(v.GetString("trend.week_boundary"))
	if nil != err {
		return trend.Query{}, err
	}
	q.Dates.WeekBoundary = boundary

	if metric := v.GetString("trend.rank.metric"); metric != "" {
		q.Rank = &trend.RankOption{
			Metric: metric,
			TopN:   v.GetInt("trend.rank.top_n"),
		}
	}

	return q, q.Validate()
}
