package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/arkamaulana/classroom-api/internal/dto"
	"github.com/arkamaulana/classroom-api/internal/models"
	"github.com/arkamaulana/classroom-api/internal/repository"
)

// StudentDashboardService produces the aggregated counters shown on the
// student landing page.
type StudentDashboardService interface {
	GetStats(ctx context.Context, student models.User) (dto.StudentStatsResponse, error)
}

type studentDashboardService struct {
	notes           repository.NoteRepository
	assignments     repository.AssignmentRepository
	submissions     repository.SubmissionRepository
	quizzes         repository.QuizRepository
	quizSubmissions repository.QuizSubmissionRepository
	grades          repository.GradeRepository
	cache           *redis.Client
	cacheTTL        time.Duration
	logger          zerolog.Logger
	now             func() time.Time
}

// NewStudentDashboardService builds the dashboard aggregator.
func NewStudentDashboardService(
	notes repository.NoteRepository,
	assignments repository.AssignmentRepository,
	submissions repository.SubmissionRepository,
	quizzes repository.QuizRepository,
	quizSubmissions repository.QuizSubmissionRepository,
	grades repository.GradeRepository,
	cache *redis.Client,
	ttl time.Duration,
	logger zerolog.Logger,
) StudentDashboardService {
	return &studentDashboardService{
		notes:           notes,
		assignments:     assignments,
		submissions:     submissions,
		quizzes:         quizzes,
		quizSubmissions: quizSubmissions,
		grades:          grades,
		cache:           cache,
		cacheTTL:        ttl,
		logger:          logger.With().Str("component", "student_dashboard_service").Logger(),
		now:             time.Now,
	}
}

func (s *studentDashboardService) GetStats(ctx context.Context, student models.User) (dto.StudentStatsResponse, error) {
	cacheKey := fmt.Sprintf("dashboard:student:%d", student.ID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.StudentStatsResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Uint("student_id", student.ID).Msg("dashboard cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
		}
	}

	response, err := s.buildStats(ctx, student)
	if err != nil {
		return dto.StudentStatsResponse{}, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store dashboard cache")
			}
		}
	}

	return response, nil
}

func (s *studentDashboardService) buildStats(ctx context.Context, student models.User) (dto.StudentStatsResponse, error) {
	notes, err := s.notes.List(ctx)
	if err != nil {
		return dto.StudentStatsResponse{}, err
	}
	notesAvailable := len(FilterVisible(notes, student))

	assignments, err := s.assignments.List(ctx)
	if err != nil {
		return dto.StudentStatsResponse{}, err
	}

	submissions, err := s.submissions.List(ctx, repository.SubmissionFilter{StudentID: &student.ID})
	if err != nil {
		return dto.StudentStatsResponse{}, err
	}
	submittedAssignments := make(map[uint]struct{}, len(submissions))
	for _, submission := range submissions {
		submittedAssignments[submission.AssignmentID] = struct{}{}
	}

	now := s.now()
	assignmentsPending := 0
	for _, assignment := range FilterVisible(assignments, student) {
		if assignment.IsPastDue(now) {
			continue
		}
		if _, submitted := submittedAssignments[assignment.ID]; submitted {
			continue
		}
		assignmentsPending++
	}

	quizzes, err := s.quizzes.List(ctx)
	if err != nil {
		return dto.StudentStatsResponse{}, err
	}
	attempts, err := s.quizSubmissions.ListByStudent(ctx, student.ID)
	if err != nil {
		return dto.StudentStatsResponse{}, err
	}
	attemptedQuizzes := make(map[uint]struct{}, len(attempts))
	for _, attempt := range attempts {
		attemptedQuizzes[attempt.QuizID] = struct{}{}
	}

	quizzesAvailable := 0
	for _, quiz := range FilterVisible(quizzes, student) {
		if quiz.IsDraft() {
			continue
		}
		if _, attempted := attemptedQuizzes[quiz.ID]; attempted {
			continue
		}
		quizzesAvailable++
	}

	published, err := s.grades.ListPublishedByStudent(ctx, student.ID)
	if err != nil {
		return dto.StudentStatsResponse{}, err
	}

	return dto.StudentStatsResponse{
		NotesAvailable:     notesAvailable,
		AssignmentsPending: assignmentsPending,
		QuizzesAvailable:   quizzesAvailable,
		GradesPublished:    len(published),
	}, nil
}
