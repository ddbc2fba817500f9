package service

import "github.com/arkamaulana/classroom-api/internal/models"

// IsVisible decides whether a student may see a content item. It is a pure
// predicate: absent or malformed fields degrade to "not visible", never to an
// error.
func IsVisible(access models.ContentAccess, student models.User) bool {
	switch access.Type {
	case models.AccessAllClass:
		if student.ClassSemester == nil {
			return false
		}
		// Exact string equality, no normalisation.
		return *student.ClassSemester == access.ClassSemester
	case models.AccessSelectedStudents:
		for _, id := range access.AssignedStudentIDs {
			if id == student.ID {
				return true
			}
		}
		return false
	default:
		// Unknown access type: fail closed.
		return false
	}
}

// FilterVisible returns the items the student may see, preserving input order.
func FilterVisible[T models.AccessControlled](items []T, student models.User) []T {
	visible := make([]T, 0, len(items))
	for _, item := range items {
		if IsVisible(item.Access(), student) {
			visible = append(visible, item)
		}
	}
	return visible
}
