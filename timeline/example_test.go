package timeline_test

import (
	"fmt"
	"time"

	"github.com/katalvlaran/temporalis/distribution"
	"github.com/katalvlaran/temporalis/timeline"
)

// ExampleTimeline_Table flattens two records into one time-sorted table.
func ExampleTimeline_Table() {
	tl := timeline.New()
	late, _ := distribution.FromDates([]time.Time{time.Date(2031, time.January, 1, 0, 0, 0, 0, time.UTC)}, []float64{4})
	early, _ := distribution.FromDates([]time.Time{time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)}, []float64{6})
	_ = tl.Add(late, 1, 10)
	_ = tl.Add(early, 2, 20)

	rows, err := tl.Table()
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, r := range rows {
		fmt.Println(r.Date().Format("2006-01-02"), r.Amount, r.Flow, r.Activity)
	}
	// Output:
	// 2025-07-01 6 2 20
	// 2031-01-01 4 1 10
}
