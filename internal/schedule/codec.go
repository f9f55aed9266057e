package schedule

import "fmt"

// Class is one decoded schedule segment: the assignment a group has at a
// single time slot.
type Class struct {
	Classroom int `json:"classroom"`
	Teacher   int `json:"teacher"`
	Type      int `json:"type"`
}

// Held reports whether the class is actually held, i.e. both a classroom and
// a teacher are assigned.
func (c Class) Held() bool {
	return c.Classroom != 0 && c.Teacher != 0
}

// Decode extracts the (classroom, teacher, type) assignment from a single
// segment of SegmentLength bits. The teacher field deliberately ends one bit
// short of the type boundary while the type field starts exactly at it,
// leaving one bit unread between them; every revision of the encoding shares
// this asymmetry, so decoders must reproduce it rather than close the gap.
func (p *Problem) Decode(segment []byte) Class {
	return Class{
		Classroom: bitsToInt(segment[:p.ClassroomBits]),
		Teacher:   bitsToInt(segment[p.ClassroomBits : p.TeacherBits-1]),
		Type:      bitsToInt(segment[p.TypeBits:]),
	}
}

// Reshape partitions a full bit string into the nested group/week/day/slot
// view, decoding every leaf segment. The partition is lossless: segments are
// taken in group-major traversal order and nothing is skipped or padded.
func (p *Problem) Reshape(bits []byte) (SchedulesTable, error) {
	if err := p.CheckLength(bits); err != nil {
		return nil, err
	}

	table := make(SchedulesTable, p.TotalGroups)
	offset := 0
	for group := range table {
		table[group] = make(GroupSchedule, p.WeeksPerGroup)
		for week := range table[group] {
			table[group][week] = make(WeekSchedule, p.DaysPerWeek)
			for day := range table[group][week] {
				table[group][week][day] = make(DaySchedule, p.ClassesPerDay)
				for class := range table[group][week][day] {
					table[group][week][day][class] = p.Decode(bits[offset : offset+p.SegmentLength])
					offset += p.SegmentLength
				}
			}
		}
	}
	return table, nil
}

// SimultaneousClasses regroups the bit string by time slot: element s holds
// the decoded class of every group at slot s, ordered by group number.
func (p *Problem) SimultaneousClasses(bits []byte) ([][]Class, error) {
	if err := p.CheckLength(bits); err != nil {
		return nil, err
	}

	slots := make([][]Class, p.ClassesPerGroup)
	for slot := range slots {
		slots[slot] = make([]Class, p.TotalGroups)
	}
	for group := 0; group < p.TotalGroups; group++ {
		for slot := 0; slot < p.ClassesPerGroup; slot++ {
			start := group*p.groupChunk + slot*p.SegmentLength
			slots[slot][group] = p.Decode(bits[start : start+p.SegmentLength])
		}
	}
	return slots, nil
}

// CheckLength rejects bit strings whose length differs from the configured
// total. A mismatch is a programming error on the caller's side; it is never
// silently truncated or padded.
func (p *Problem) CheckLength(bits []byte) error {
	if len(bits) != p.TotalLength {
		return fmt.Errorf("bit string length %v does not match the configured total length %v", len(bits), p.TotalLength)
	}
	return nil
}

func bitsToInt(bits []byte) int {
	value := 0
	for _, bit := range bits {
		value = value<<1 | int(bit)
	}
	return value
}
