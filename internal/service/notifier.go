package service

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// GradeEvent is published whenever a grade reaches a terminal teacher action.
type GradeEvent struct {
	SubmissionID uint      `json:"submission_id"`
	StudentID    uint      `json:"student_id"`
	AssignmentID uint      `json:"assignment_id"`
	Status       string    `json:"status"`
	Marks        *float64  `json:"marks,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// GradeNotifier fans grade lifecycle events out to interested consumers.
// Implementations must be safe to call from concurrent requests.
type GradeNotifier interface {
	GradePublished(event GradeEvent)
	GradeRejected(event GradeEvent)
}

type natsGradeNotifier struct {
	conn        *nats.Conn
	subjectBase string
	logger      zerolog.Logger
}

// NewNATSGradeNotifier publishes grade events as JSON on NATS subjects
// "<base>.published" and "<base>.rejected". Delivery is best effort: a
// publish failure is logged and never surfaced to the grading request.
func NewNATSGradeNotifier(conn *nats.Conn, subjectBase string, logger zerolog.Logger) GradeNotifier {
	if subjectBase == "" {
		subjectBase = "grades"
	}

	return &natsGradeNotifier{
		conn:        conn,
		subjectBase: subjectBase,
		logger:      logger.With().Str("component", "grade_notifier").Logger(),
	}
}

func (n *natsGradeNotifier) GradePublished(event GradeEvent) {
	n.publish(n.subjectBase+".published", event)
}

func (n *natsGradeNotifier) GradeRejected(event GradeEvent) {
	n.publish(n.subjectBase+".rejected", event)
}

func (n *natsGradeNotifier) publish(subject string, event GradeEvent) {
	if n.conn == nil {
		n.logger.Debug().Str("subject", subject).Msg("nats not configured, skipping grade event")
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		n.logger.Warn().Err(err).Str("subject", subject).Msg("failed to encode grade event")
		return
	}

	if err := n.conn.Publish(subject, payload); err != nil {
		n.logger.Warn().Err(err).Str("subject", subject).Msg("failed to publish grade event")
	}
}
