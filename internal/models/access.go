package models

// AccessType is the visibility mode of a content item.
type AccessType string

const (
	// AccessAllClass makes an item visible to every student in the item's class/semester.
	AccessAllClass AccessType = "ALL_CLASS"
	// AccessSelectedStudents restricts an item to an explicit roster of students.
	AccessSelectedStudents AccessType = "SELECTED_STUDENTS"
)

// ContentAccess is the visibility descriptor shared by notes, assignments and
// quizzes. AssignedStudentIDs is only meaningful for AccessSelectedStudents; in
// that mode it is the exhaustive allow-list and ClassSemester is ignored.
type ContentAccess struct {
	Type               AccessType
	ClassSemester      string
	AssignedStudentIDs []uint
}

// AccessControlled is implemented by every content model that is filtered per
// student.
type AccessControlled interface {
	Access() ContentAccess
}

func assignedIDs(students []User) []uint {
	if len(students) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(students))
	for _, student := range students {
		ids = append(ids, student.ID)
	}
	return ids
}
