package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jobfeeds/jobs-ingest/internal/jobs"
)

// Annualization assumes a 40-hour week over 52 weeks.
const (
	hoursPerWeek = 40
	weeksPerYear = 52
)

// rangePatterns match two dollar amounts joined by a separator. Order
// matters: the first pattern to match wins, so the most specific forms
// come first. The description is lower-cased and whitespace-collapsed
// before matching.
var rangePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$(\d+\.?\d*)\s*per hour to \$(\d+\.?\d*)`),                      // $18.75 per hour to $19.25
	regexp.MustCompile(`\$(\d+\.?\d*)\s*-\s*\$(\d+\.?\d*)`),                             // $18.75 - $19.25
	regexp.MustCompile(`\$(\d+\.?\d*)\s*to \$(\d+\.?\d*)`),                              // $18.75 to $19.25
	regexp.MustCompile(`\$(\d+\.\d+)\s*(?:-|to)\s*\$(\d+\.\d+)\s*(?:/|per|\s)(?:hour|hr)`), // $17.15-$18.25/hr
	regexp.MustCompile(`\$(\d+)\s*(?:-|to)\s*\$(\d+)\s*(?:/|per|\s)(?:hour|hr)`),        // $17-$18/hr
	regexp.MustCompile(`\$(\d+)\s*per hour to \$(\d+\.?\d*)`),                           // $18 per hour to $19.25
	regexp.MustCompile(`\$(\d+\.?\d*)\s*per hour to \$(\d+)`),                           // $18.75 per hour to $19
	regexp.MustCompile(`\$(\d+)\s*-\s*\$(\d+\.?\d*)`),                                   // $18 - $19.25
	regexp.MustCompile(`\$(\d+\.?\d*)\s*-\s*\$(\d+)`),                                   // $18.75 - $19
	regexp.MustCompile(`\$(\d+)\s*to \$(\d+\.?\d*)`),                                    // $18 to $19.25
	regexp.MustCompile(`\$(\d+\.?\d*)\s*to \$(\d+)`),                                    // $18.75 to $19
	regexp.MustCompile(`\$(\d+)\s*per hour to \$(\d+)`),                                 // $18 per hour to $19
	regexp.MustCompile(`\$(\d+)\s*-\s*\$(\d+)`),                                         // $18 - $19
	regexp.MustCompile(`\$(\d+)\s*to \$(\d+)`),                                          // $18 to $19
}

// singlePatterns match one dollar amount. Hourly-qualified forms come
// before bare amounts so an annual figure is not misread as hourly; the
// textual WAGE form is checked last.
var singlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\$\d+\.?\d*)\s*(?:/|\s*/\s*|\s+per\s*|\s+an\s*|\s+)\s*h(?:ou)?r(?:s|\b)`), // $18.00 per hour, $17.15/hr
	regexp.MustCompile(`(\$\d+\.?\d*)\s*(?:/|\s*/\s*|\s+per\s*|\s+an\s*|\s+)\s*hr\b`),              // $15.50/hr
	regexp.MustCompile(`(\$\d+\.?\d*)\s*(?:/|\s*/\s*|\s+per\s*|\s+an\s*)\s*hour\b`),                // $19.50 an hour
	regexp.MustCompile(`(\$\d+\.?\d*)\s*-\s*\$\d+\.?\d*\s*(?:/|\s*/\s*|\s+per\s*|\s+an\s*)\s*h(?:ou)?r`), // $15.50-$18.50/hr
	regexp.MustCompile(`(\$\d+\.\d+)`),                       // $17.15
	regexp.MustCompile(`(\$\d+)`),                            // $17
	regexp.MustCompile(`wage:\s*(\d+\.?\d*)\s*per hour`),     // wage: 20.32 per hour
	regexp.MustCompile(`wage:\s*(\d+)\s*per hour`),           // wage: 20 per hour
}

// resolveSalary derives an annualized salary estimate. Structured salary
// fields win over description scanning; within the description, range
// patterns are tried before single-value patterns. A matched pattern
// whose captures fail numeric parsing counts as a non-match and the
// cascade continues.
func (e *Extractor) resolveSalary(payload jobs.Document) *float64 {
	if rate, ok := payload.Float("salary_value"); ok && rate != 0 {
		annual := rate * hoursPerWeek * weeksPerYear
		return &annual
	}

	minRate, okMin := payload.Float("salary_min_value")
	maxRate, okMax := payload.Float("salary_max_value")
	if okMin && okMax && minRate != 0 && maxRate != 0 {
		annual := (minRate + maxRate) / 2 * hoursPerWeek * weeksPerYear
		return &annual
	}

	desc, _ := payload.String("description")
	if desc == "" {
		return nil
	}
	desc = strings.Join(strings.Fields(strings.ToLower(desc)), " ")

	for _, re := range rangePatterns {
		m := re.FindStringSubmatch(desc)
		if m == nil {
			continue
		}
		low, errLow := strconv.ParseFloat(m[1], 64)
		high, errHigh := strconv.ParseFloat(m[2], 64)
		if errLow != nil || errHigh != nil {
			continue
		}
		hourly := (low + high) / 2
		annual := round2(hourly * hoursPerWeek * weeksPerYear)
		e.logger.Info("salary resolved from range pattern",
			zap.String("pattern", re.String()),
			zap.Float64("hourly", hourly),
			zap.Float64("annual", annual))
		return &annual
	}

	for _, re := range singlePatterns {
		m := re.FindStringSubmatch(desc)
		if m == nil {
			continue
		}
		hourly, err := strconv.ParseFloat(strings.NewReplacer("$", "", ",", "").Replace(m[1]), 64)
		if err != nil {
			continue
		}
		annual := round2(hourly * hoursPerWeek * weeksPerYear)
		e.logger.Info("salary resolved from single pattern",
			zap.String("pattern", re.String()),
			zap.Float64("hourly", hourly),
			zap.Float64("annual", annual))
		return &annual
	}

	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
