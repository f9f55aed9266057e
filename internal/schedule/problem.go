package schedule

import (
	"errors"
	"math/rand"
)

// Session type codes carried by the type bit of every class segment.
const (
	PracticeCode = 0
	LectureCode  = 1
)

// ProblemConfig holds the raw numeric parameters of a scheduling problem.
// Zero-valued classroom ranges are defaulted to the lower half (lectures) and
// upper half (practices) of the classroom numbers the bit layout can express.
type ProblemConfig struct {
	SegmentLength int `mapstructure:"segmentLength"`
	ClassroomBits int `mapstructure:"classroomBits"`
	TeacherBits   int `mapstructure:"teacherBits"`
	TypeBits      int `mapstructure:"typeBits"`

	TotalGroups int `mapstructure:"totalGroups"`
	Courses     int `mapstructure:"courses"`
	Directions  int `mapstructure:"directions"`

	GroupsPerLecture  int `mapstructure:"groupsPerLecture"`
	GroupsPerPractice int `mapstructure:"groupsPerPractice"`

	ClassesPerDay int `mapstructure:"classesPerDay"`
	DaysPerWeek   int `mapstructure:"daysPerWeek"`
	WeeksPerGroup int `mapstructure:"weeksPerGroup"`

	LectureClassrooms  []int `mapstructure:"lectureClassrooms"`
	PracticeClassrooms []int `mapstructure:"practiceClassrooms"`
}

// Problem is an immutable scheduling problem: the per-class segment bit layout
// together with every structural constant the codec and the evaluator need.
// All parameter incompatibilities are reported by NewProblem, never later.
type Problem struct {
	ProblemConfig

	TotalClassrooms int
	ClassesPerGroup int
	TotalLength     int

	dayChunk   int
	weekChunk  int
	groupChunk int

	lectureRooms  map[int]bool
	practiceRooms map[int]bool
}

func NewProblem(config ProblemConfig) (*Problem, error) {
	problem := &Problem{ProblemConfig: config}

	problem.TotalClassrooms = 1<<config.ClassroomBits - 1
	problem.ClassesPerGroup = config.ClassesPerDay * config.DaysPerWeek * config.WeeksPerGroup
	problem.dayChunk = config.SegmentLength * config.ClassesPerDay
	problem.weekChunk = problem.dayChunk * config.DaysPerWeek
	problem.groupChunk = problem.weekChunk * config.WeeksPerGroup
	problem.TotalLength = problem.groupChunk * config.TotalGroups

	if len(problem.LectureClassrooms) == 0 && len(problem.PracticeClassrooms) == 0 {
		half := (problem.TotalClassrooms + 1) / 2
		for classroom := 1; classroom < half; classroom++ {
			problem.LectureClassrooms = append(problem.LectureClassrooms, classroom)
		}
		for classroom := half; classroom <= problem.TotalClassrooms; classroom++ {
			problem.PracticeClassrooms = append(problem.PracticeClassrooms, classroom)
		}
	}

	problem.lectureRooms = make(map[int]bool, len(problem.LectureClassrooms))
	for _, classroom := range problem.LectureClassrooms {
		problem.lectureRooms[classroom] = true
	}
	problem.practiceRooms = make(map[int]bool, len(problem.PracticeClassrooms))
	for _, classroom := range problem.PracticeClassrooms {
		problem.practiceRooms[classroom] = true
	}

	if err := problem.validate(); err != nil {
		return nil, err
	}
	return problem, nil
}

func (p *Problem) validate() error {
	spansSum := p.ClassroomBits +
		(p.TeacherBits - p.ClassroomBits) +
		(p.TypeBits - p.TeacherBits) + 1
	if spansSum != p.SegmentLength {
		return errors.New("bit boundaries are not compatible with the segment length")
	}
	if p.ClassroomBits > p.TeacherBits || p.TeacherBits > p.TypeBits {
		return errors.New("bit boundaries must be monotonically non-decreasing")
	}
	if overlap, covered := p.classroomRangesState(); overlap || !covered {
		return errors.New("lecture and practice classrooms must be disjoint and cover every classroom number")
	}
	if p.DaysPerWeek < 0 || p.DaysPerWeek > 7 {
		return errors.New("days per week out of range")
	}
	if p.ClassesPerDay < 0 || p.ClassesPerDay > 8 {
		return errors.New("classes per day out of range")
	}
	if p.Courses <= 0 || p.Directions <= 0 {
		return errors.New("courses and directions must be positive")
	}
	if (p.TotalGroups+1)%p.Courses != 0 {
		return errors.New("total groups can not be partitioned evenly into courses")
	}
	if ((p.TotalGroups+1)/p.Courses)%p.Directions != 0 {
		return errors.New("course groups can not be partitioned evenly into directions")
	}
	return nil
}

func (p *Problem) classroomRangesState() (overlap bool, covered bool) {
	for classroom := range p.lectureRooms {
		if p.practiceRooms[classroom] {
			overlap = true
		}
	}
	if len(p.lectureRooms)+len(p.practiceRooms) != p.TotalClassrooms {
		return overlap, false
	}
	for classroom := 1; classroom <= p.TotalClassrooms; classroom++ {
		if !p.lectureRooms[classroom] && !p.practiceRooms[classroom] {
			return overlap, false
		}
	}
	return overlap, true
}

// IsLectureClassroom reports whether the classroom number belongs to the
// lecture range. Classroom 0 belongs to neither range.
func (p *Problem) IsLectureClassroom(classroom int) bool {
	return p.lectureRooms[classroom]
}

func (p *Problem) IsPracticeClassroom(classroom int) bool {
	return p.practiceRooms[classroom]
}

// RandomBits draws a uniformly random individual: for every group and every
// class slot a fresh segment of SegmentLength random bits, concatenated
// group-major.
func (p *Problem) RandomBits(rng *rand.Rand) []byte {
	bits := make([]byte, 0, p.TotalLength)
	for group := 1; group <= p.TotalGroups; group++ {
		for class := 0; class < p.ClassesPerGroup; class++ {
			for bit := 0; bit < p.SegmentLength; bit++ {
				bits = append(bits, byte(rng.Intn(2)))
			}
		}
	}
	return bits
}
