package schedule

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// SchedulesTable is the derived nested view of a decoded bit string:
// group -> week -> day -> slot -> Class. It exists for reporting and
// persistence only; the bit string stays the source of truth.
type (
	DaySchedule    []Class
	WeekSchedule   []DaySchedule
	GroupSchedule  []WeekSchedule
	SchedulesTable []GroupSchedule
)

// Describe writes the table as an indented key/value document, one nesting
// level per four spaces.
func (t SchedulesTable) Describe(w io.Writer) error {
	for group, weeks := range t {
		if _, err := fmt.Fprintf(w, "group-%v:\n", group+1); err != nil {
			return err
		}
		for week, days := range weeks {
			if _, err := fmt.Fprintf(w, "    week-%v:\n", week+1); err != nil {
				return err
			}
			for day, classes := range days {
				if _, err := fmt.Fprintf(w, "        day-%v:\n", day+1); err != nil {
					return err
				}
				for class, decoded := range classes {
					_, err := fmt.Fprintf(
						w,
						"            - class-%v: classroom=%v teacher=%v type=%v\n",
						class+1, decoded.Classroom, decoded.Teacher, decoded.Type,
					)
					if err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

// WriteJSON persists the table with group-N/week-N/day-N/class-N keys, the
// layout downstream reporting tools consume.
func (t SchedulesTable) WriteJSON(path string) error {
	bytes, err := json.MarshalIndent(t.keyed(), "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, bytes, 0644)
}

func (t SchedulesTable) keyed() map[string]any {
	groups := make(map[string]any, len(t))
	for group, weeks := range t {
		weeksKeyed := make(map[string]any, len(weeks))
		for week, days := range weeks {
			daysKeyed := make(map[string]any, len(days))
			for day, classes := range days {
				classesKeyed := make(map[string]any, len(classes))
				for class, decoded := range classes {
					classesKeyed[fmt.Sprintf("class-%v", class+1)] = decoded
				}
				daysKeyed[fmt.Sprintf("day-%v", day+1)] = classesKeyed
			}
			weeksKeyed[fmt.Sprintf("week-%v", week+1)] = daysKeyed
		}
		groups[fmt.Sprintf("group-%v", group+1)] = weeksKeyed
	}
	return groups
}

// TableFromJSON reads a table persisted by WriteJSON back into its nested
// slice form, using the problem for the expected dimensions.
func TableFromJSON(path string, problem *Problem) (SchedulesTable, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var keyed map[string]map[string]map[string]map[string]Class
	if err := json.Unmarshal(bytes, &keyed); err != nil {
		return nil, err
	}

	table := make(SchedulesTable, problem.TotalGroups)
	for group := range table {
		table[group] = make(GroupSchedule, problem.WeeksPerGroup)
		weeks, ok := keyed[fmt.Sprintf("group-%v", group+1)]
		if !ok {
			return nil, fmt.Errorf("schedule file is missing group-%v", group+1)
		}
		for week := range table[group] {
			table[group][week] = make(WeekSchedule, problem.DaysPerWeek)
			days, ok := weeks[fmt.Sprintf("week-%v", week+1)]
			if !ok {
				return nil, fmt.Errorf("schedule file is missing week-%v of group-%v", week+1, group+1)
			}
			for day := range table[group][week] {
				table[group][week][day] = make(DaySchedule, problem.ClassesPerDay)
				classes, ok := days[fmt.Sprintf("day-%v", day+1)]
				if !ok {
					return nil, fmt.Errorf("schedule file is missing day-%v of group-%v", day+1, group+1)
				}
				for class := range table[group][week][day] {
					decoded, ok := classes[fmt.Sprintf("class-%v", class+1)]
					if !ok {
						return nil, fmt.Errorf("schedule file is missing class-%v of group-%v", class+1, group+1)
					}
					table[group][week][day][class] = decoded
				}
			}
		}
	}
	return table, nil
}
