package school

import (
	"reflect"
	"testing"
)

func grade(studentID string, seq Sequence, score float64) Grade {
	return Grade{StudentID: studentID, Sequence: seq, Score: score}
}

func TestComputeReportCard(t *testing.T) {
	tests := []struct {
		name   string
		grades []Grade
		want   ReportCard
	}{
		{
			name:   "no grades",
			grades: nil,
			want:   ReportCard{StudentID: "s1", Sequences: map[Sequence]float64{}, Average: 0},
		},
		{
			name: "single sequence average",
			grades: []Grade{
				grade("s1", SequenceFirst, 70),
				grade("s1", SequenceFirst, 80),
				grade("s1", SequenceFirst, 90),
			},
			want: ReportCard{
				StudentID: "s1",
				Sequences: map[Sequence]float64{SequenceFirst: 80},
				Average:   80,
			},
		},
		{
			name: "overall average over sequence averages, not raw grades",
			grades: []Grade{
				grade("s1", SequenceFirst, 70),
				grade("s1", SequenceFirst, 90),
				grade("s1", SequenceSecond, 60),
			},
			want: ReportCard{
				StudentID: "s1",
				Sequences: map[Sequence]float64{SequenceFirst: 80, SequenceSecond: 60},
				Average:   70,
			},
		},
		{
			name: "empty sequences omitted entirely",
			grades: []Grade{
				grade("s1", SequenceThird, 55.5),
			},
			want: ReportCard{
				StudentID: "s1",
				Sequences: map[Sequence]float64{SequenceThird: 55.5},
				Average:   55.5,
			},
		},
		{
			name: "unknown sequence labels excluded from all aggregates",
			grades: []Grade{
				grade("s1", SequenceFirst, 80),
				grade("s1", Sequence("sixth"), 100),
				grade("s1", Sequence(""), 100),
			},
			want: ReportCard{
				StudentID: "s1",
				Sequences: map[Sequence]float64{SequenceFirst: 80},
				Average:   80,
			},
		},
		{
			name: "rounding to 2 decimals",
			grades: []Grade{
				grade("s1", SequenceFirst, 70),
				grade("s1", SequenceFirst, 80),
				grade("s1", SequenceFirst, 85),
				grade("s1", SequenceSecond, 33),
				grade("s1", SequenceSecond, 34),
				grade("s1", SequenceSecond, 34),
			},
			want: ReportCard{
				StudentID: "s1",
				// first: 235/3 = 78.33, second: 101/3 = 33.67
				Sequences: map[Sequence]float64{SequenceFirst: 78.33, SequenceSecond: 33.67},
				Average:   56, // (78.33 + 33.67) / 2
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeReportCard("s1", tt.grades)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ComputeReportCard() = %+v; want %+v", got, tt.want)
			}
			if got.Submitted {
				t.Error("ComputeReportCard() must start with Submitted=false")
			}
		})
	}
}

func TestComputeReportCard_idempotent(t *testing.T) {
	grades := []Grade{
		grade("s1", SequenceFirst, 70.5),
		grade("s1", SequenceSecond, 81.25),
		grade("s1", SequenceSecond, 64),
		grade("s1", SequenceFifth, 99.99),
	}

	first := ComputeReportCard("s1", grades)
	second := ComputeReportCard("s1", grades)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("ComputeReportCard() not idempotent: %+v != %+v", first, second)
	}
}
