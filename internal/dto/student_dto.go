package dto

// StudentStatsResponse aggregates dashboard counters for a student: content
// they can see and work still open to them.
type StudentStatsResponse struct {
	NotesAvailable     int `json:"notes_available"`
	AssignmentsPending int `json:"assignments_pending"`
	QuizzesAvailable   int `json:"quizzes_available"`
	GradesPublished    int `json:"grades_published"`
}
