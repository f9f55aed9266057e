package schedule

import (
	"fmt"
	"io"

	"github.com/samber/lo"
)

// Violation enumerates every scheduling rule an individual can break.
type Violation int

const (
	ZeroClassMembers Violation = iota
	ClassroomType
	ClassroomNumContr
	MultipleTeachersContr
	ClassroomTypeContr
	TeacherContr
	DuplicateGroups
	GroupLimit
	ClassesPerDay
)

// HardViolations and SoftViolations fix the reporting order: hard constraints
// first, soft constraints after, each in declaration order.
var (
	HardViolations = []Violation{
		ZeroClassMembers,
		ClassroomType,
		ClassroomNumContr,
		MultipleTeachersContr,
		ClassroomTypeContr,
		TeacherContr,
		DuplicateGroups,
	}
	SoftViolations = []Violation{
		GroupLimit,
		ClassesPerDay,
	}
)

var violationNames = map[Violation]string{
	ZeroClassMembers:      "Zero class members",
	ClassroomType:         "Classroom type",
	ClassroomNumContr:     "Classroom number contradiction",
	MultipleTeachersContr: "Multiple teachers contradiction",
	ClassroomTypeContr:    "Classroom type contradiction",
	TeacherContr:          "Teacher contradiction",
	DuplicateGroups:       "Duplicate groups",
	GroupLimit:            "Group limit",
	ClassesPerDay:         "Classes per day",
}

func (v Violation) String() string {
	return violationNames[v]
}

// Tally counts violations by kind for a single evaluation. Every evaluation
// produces a fresh tally; it never feeds back into later evaluations.
type Tally map[Violation]int

func (t Tally) HardCount() int {
	return lo.SumBy(HardViolations, func(violation Violation) int { return t[violation] })
}

func (t Tally) SoftCount() int {
	return lo.SumBy(SoftViolations, func(violation Violation) int { return t[violation] })
}

// Report writes the per-kind counts in fixed order, hard constraints first.
func (t Tally) Report(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "Hard constraint violations:"); err != nil {
		return err
	}
	for _, violation := range HardViolations {
		if _, err := fmt.Fprintf(w, "    %v: %v\n", violation, t[violation]); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "Soft constraint violations:"); err != nil {
		return err
	}
	for _, violation := range SoftViolations {
		if _, err := fmt.Fprintf(w, "    %v: %v\n", violation, t[violation]); err != nil {
			return err
		}
	}
	return nil
}
