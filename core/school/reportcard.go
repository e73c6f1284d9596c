package school

import "math"

// ComputeReportCard derives a student's report card from their grade records.
// Grades are partitioned by sequence; records with an unrecognized sequence
// label are excluded from all aggregates. Each present sequence maps to the
// arithmetic mean of its scores, and Average is the mean of those sequence
// averages (not of the raw scores), all rounded to 2 decimal places.
// The result always starts with Submitted=false: every recompute fully
// replaces the previous report card, so a submitted card goes back to
// needing submission after any grade change.
func ComputeReportCard(studentID string, grades []Grade) ReportCard {
	sums := make(map[Sequence]float64, len(Sequences))
	counts := make(map[Sequence]int, len(Sequences))
	for _, g := range grades {
		if !KnownSequence(g.Sequence) {
			continue
		}
		sums[g.Sequence] += g.Score
		counts[g.Sequence]++
	}

	seqAverages := make(map[Sequence]float64, len(sums))
	var total float64
	for seq, sum := range sums {
		avg := round2(sum / float64(counts[seq]))
		seqAverages[seq] = avg
		total += avg
	}

	var average float64
	if len(seqAverages) > 0 {
		average = round2(total / float64(len(seqAverages)))
	}

	return ReportCard{
		StudentID: studentID,
		Sequences: seqAverages,
		Average:   average,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
