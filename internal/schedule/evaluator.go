package schedule

import "slices"

// CostModel weighs the violation tally into a scalar cost. PreferredClassesMin
// and PreferredClassesMax bound the preferred number of held classes per day
// as a half-open range [min, max).
type CostModel struct {
	HardPenalty         int `mapstructure:"hardPenalty"`
	SoftPenalty         int `mapstructure:"softPenalty"`
	PreferredClassesMin int `mapstructure:"preferredClassesMin"`
	PreferredClassesMax int `mapstructure:"preferredClassesMax"`
}

// Evaluator scores an individual bit string against the scheduling rules.
// Evaluate is pure and deterministic: equal inputs always produce equal costs,
// and no state survives between calls.
type Evaluator interface {
	Evaluate(bits []byte) (int, Tally, error)
	Problem() *Problem
}

func NewEvaluator(problem *Problem, model CostModel) Evaluator {
	if model.SoftPenalty == 0 {
		model.SoftPenalty = 5
	}
	if model.PreferredClassesMin == 0 && model.PreferredClassesMax == 0 {
		model.PreferredClassesMin, model.PreferredClassesMax = 2, 6
	}
	return &costEvaluator{problem: problem, model: model}
}

type costEvaluator struct {
	problem *Problem
	model   CostModel
}

// occupancy tracks one admitted class tuple within a time slot: how many
// groups attend it and which ones.
type occupancy struct {
	count  int
	groups []int
}

func (e *costEvaluator) Problem() *Problem {
	return e.problem
}

func (e *costEvaluator) Evaluate(bits []byte) (int, Tally, error) {
	slots, err := e.problem.SimultaneousClasses(bits)
	if err != nil {
		return 0, nil, err
	}

	tally := make(Tally)
	for _, classes := range slots {
		e.scanSlot(classes, tally)
	}
	e.countClassesPerDay(bits, tally)

	cost := e.model.HardPenalty*tally.HardCount() + e.model.SoftPenalty*tally.SoftCount()
	return cost, tally, nil
}

// scanSlot walks the classes every group holds at one time slot, in group
// order, admitting valid tuples and tallying the rest. The first group's
// tuple is admitted unconditionally.
func (e *costEvaluator) scanSlot(classes []Class, tally Tally) {
	admitted := make(map[Class]*occupancy, len(classes))
	var keys []Class

	for index, class := range classes {
		group := index + 1
		if len(admitted) == 0 {
			admitted[class] = &occupancy{count: 1, groups: []int{group}}
			keys = append(keys, class)
			continue
		}

		if e.zeroMembers(class) {
			tally[ZeroClassMembers]++
			continue
		}
		if e.classroomTypeMismatch(class) {
			tally[ClassroomType]++
			continue
		}

		if current, ok := admitted[class]; ok {
			e.join(class, group, current, tally)
			continue
		}

		for _, key := range keys {
			e.compareAgainst(key, class, tally)
		}
		admitted[class] = &occupancy{count: 1, groups: []int{group}}
		keys = append(keys, class)
	}
}

// zeroMembers flags tuples with exactly one of classroom and teacher unset,
// and tuples with both unset that still claim a session other than a free
// lecture slot.
func (e *costEvaluator) zeroMembers(class Class) bool {
	zeros := 0
	if class.Classroom == 0 {
		zeros++
	}
	if class.Teacher == 0 {
		zeros++
	}
	return zeros == 1 || (zeros == 2 && class.Type != LectureCode)
}

func (e *costEvaluator) classroomTypeMismatch(class Class) bool {
	if e.problem.IsLectureClassroom(class.Classroom) && class.Type != LectureCode {
		return true
	}
	if e.problem.IsPracticeClassroom(class.Classroom) && class.Type != PracticeCode {
		return true
	}
	return false
}

// join attempts to add the group to an already admitted tuple, respecting the
// per-type occupancy cap and rejecting repeated group numbers.
func (e *costEvaluator) join(class Class, group int, current *occupancy, tally Tally) {
	limit := e.problem.GroupsPerPractice
	if class.Type == LectureCode {
		limit = e.problem.GroupsPerLecture
	}

	if current.count+1 > limit {
		tally[GroupLimit]++
		return
	}
	if slices.Contains(current.groups, group) {
		tally[DuplicateGroups]++
		return
	}
	current.count++
	current.groups = append(current.groups, group)
}

// compareAgainst tallies the contradiction, if any, between a tuple about to
// be admitted and one already in the slot. The four patterns are mutually
// exclusive for a given pair.
func (e *costEvaluator) compareAgainst(key, class Class, tally Tally) {
	sameClassroom := key.Classroom == class.Classroom
	sameTeacher := key.Teacher == class.Teacher
	sameType := key.Type == class.Type

	switch {
	case sameClassroom && sameType && !sameTeacher:
		tally[MultipleTeachersContr]++
	case sameTeacher && sameType && !sameClassroom:
		tally[ClassroomNumContr]++
	case sameClassroom && sameTeacher && !sameType:
		tally[ClassroomTypeContr]++
	case sameTeacher && !sameClassroom && !sameType:
		tally[TeacherContr]++
	}
}

// countClassesPerDay adds one soft violation for every (group, day) whose
// number of held classes falls outside the preferred half-open range.
func (e *costEvaluator) countClassesPerDay(bits []byte, tally Tally) {
	table, err := e.problem.Reshape(bits)
	if err != nil {
		// Evaluate already verified the length.
		panic(err)
	}

	for _, weeks := range table {
		for _, days := range weeks {
			for _, classes := range days {
				held := 0
				for _, class := range classes {
					if class.Held() {
						held++
					}
				}
				if held < e.model.PreferredClassesMin || held >= e.model.PreferredClassesMax {
					tally[ClassesPerDay]++
				}
			}
		}
	}
}
