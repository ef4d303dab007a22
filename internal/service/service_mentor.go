package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/MKhiriev/mentor-hub/internal/events"
	"github.com/MKhiriev/mentor-hub/internal/logger"
	"github.com/MKhiriev/mentor-hub/internal/store"
	"github.com/MKhiriev/mentor-hub/models"
)

type mentorService struct {
	userRepository         store.UserRepository
	notificationRepository store.NotificationRepository
	publisher              events.Publisher

	now    func() time.Time
	logger *logger.Logger
}

// NewMentorService constructs a [MentorService].
func NewMentorService(storages *store.Storages, publisher events.Publisher, logger *logger.Logger) MentorService {
	return &mentorService{
		userRepository:         storages.UserRepository,
		notificationRepository: storages.NotificationRepository,
		publisher:              publisher,
		now:                    time.Now,
		logger:                 logger,
	}
}

// AssignMentees makes req.MentorID the mentor of every listed user and
// notifies each newly assigned mentee. Returns the number of users updated.
func (s *mentorService) AssignMentees(ctx context.Context, req models.MentorAssignRequest) (int64, error) {
	log := logger.FromContext(ctx)

	mentor, userIDs, err := s.prepareAssignment(ctx, req)
	if err != nil {
		return 0, err
	}
	if slices.Contains(userIDs, mentor.UserID) {
		return 0, ErrMentorSelfAssigned
	}
	if mentor.MentorID != nil && slices.Contains(userIDs, *mentor.MentorID) {
		return 0, ErrMentorCycle
	}

	assigned, err := s.userRepository.AssignMentor(ctx, mentor.UserID, userIDs)
	if err != nil {
		if errors.Is(err, store.ErrMentorReference) {
			return 0, ErrMentorNotFound
		}
		return 0, fmt.Errorf("mentor assignment failed: %w", err)
	}

	s.notifyMentees(ctx, mentor, userIDs)
	publishEvent(ctx, s.publisher, events.UserEvent{
		Type:   events.TypeMenteesAssigned,
		UserID: mentor.UserID,
		Email:  mentor.Email,
		Role:   mentor.Role,
	}, s.now().UTC())

	log.Info().Str("func", "*mentorService.AssignMentees").
		Int64("mentor_id", mentor.UserID).
		Int64("assigned", assigned).
		Msg("mentees assigned")
	return assigned, nil
}

// UnassignMentees detaches the listed users from req.MentorID. Users
// mentored by somebody else are left untouched.
func (s *mentorService) UnassignMentees(ctx context.Context, req models.MentorAssignRequest) (int64, error) {
	mentor, userIDs, err := s.prepareAssignment(ctx, req)
	if err != nil {
		return 0, err
	}

	unassigned, err := s.userRepository.UnassignMentor(ctx, mentor.UserID, userIDs)
	if err != nil {
		return 0, fmt.Errorf("mentor unassignment failed: %w", err)
	}

	return unassigned, nil
}

func (s *mentorService) prepareAssignment(ctx context.Context, req models.MentorAssignRequest) (models.User, []int64, error) {
	if req.MentorID <= 0 {
		return models.User{}, nil, ErrInvalidUserID
	}

	userIDs := uniquePositiveIDs(req.UserIDs)
	if len(userIDs) == 0 {
		return models.User{}, nil, ErrNoUsersSelected
	}

	mentor, err := s.userRepository.FindUserByID(ctx, req.MentorID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, nil, ErrMentorNotFound
		}
		return models.User{}, nil, fmt.Errorf("mentor search failed: %w", err)
	}
	if mentor.Role != models.RoleMentor && mentor.Role != models.RoleAdmin {
		return models.User{}, nil, ErrNotAMentor
	}

	return mentor, userIDs, nil
}

// notifyMentees creates a notification for every listed user that is now
// mentored by mentor. Failures are logged only.
func (s *mentorService) notifyMentees(ctx context.Context, mentor models.User, userIDs []int64) {
	log := logger.FromContext(ctx)

	mentees, err := s.userRepository.ListMentees(ctx, mentor.UserID)
	if err != nil {
		log.Warn().Err(err).Str("func", "*mentorService.notifyMentees").Msg("could not list mentees to notify")
		return
	}

	now := s.now().UTC()
	name := mentor.FullName
	if name == "" {
		name = mentor.Email
	}

	notifications := make([]models.Notification, 0, len(userIDs))
	for _, mentee := range mentees {
		if !slices.Contains(userIDs, mentee.ID) {
			continue
		}
		notifications = append(notifications, models.Notification{
			UserID:    mentee.ID,
			Title:     "Mentor assigned",
			Message:   fmt.Sprintf("%s is now your mentor.", name),
			Type:      models.NotificationTypeMentor,
			CreatedAt: now,
		})
	}

	if err = s.notificationRepository.CreateNotifications(ctx, notifications); err != nil {
		log.Warn().Err(err).Str("func", "*mentorService.notifyMentees").Msg("could not notify mentees")
	}
}

func (s *mentorService) ListMentees(ctx context.Context, mentorID int64) ([]models.MenteeView, error) {
	mentees, err := s.userRepository.ListMentees(ctx, mentorID)
	if err != nil {
		return nil, fmt.Errorf("mentee listing failed: %w", err)
	}
	return mentees, nil
}

func (s *mentorService) ListMentors(ctx context.Context) ([]models.MenteeView, error) {
	mentors, err := s.userRepository.ListMentors(ctx)
	if err != nil {
		return nil, fmt.Errorf("mentor listing failed: %w", err)
	}
	return mentors, nil
}

func (s *mentorService) ListStudents(ctx context.Context) ([]models.MenteeView, error) {
	students, err := s.userRepository.ListStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("student listing failed: %w", err)
	}
	return students, nil
}

// GetMentorOf returns the mentor of userID.
func (s *mentorService) GetMentorOf(ctx context.Context, userID int64) (models.MenteeView, error) {
	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.MenteeView{}, mapUserLookupError(err)
	}
	if user.MentorID == nil {
		return models.MenteeView{}, ErrNoMentorAssigned
	}

	mentor, err := s.userRepository.FindUserByID(ctx, *user.MentorID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.MenteeView{}, ErrNoMentorAssigned
		}
		return models.MenteeView{}, fmt.Errorf("mentor search failed: %w", err)
	}

	return models.MenteeView{
		ID:              mentor.UserID,
		FullName:        mentor.FullName,
		Email:           mentor.Email,
		ProfileImageURL: mentor.ProfileImageURL,
	}, nil
}

// uniquePositiveIDs drops non-positive and repeated ids, keeping order.
func uniquePositiveIDs(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id > 0 && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
