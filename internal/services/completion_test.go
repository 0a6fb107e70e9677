package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/coursiva/coursiva-backend/internal/types"
)

func TestCompletionPercentage(t *testing.T) {
	userID := uuid.New()
	courseID := uuid.New()
	moduleID := uuid.New()

	newLessons := func(n int) ([]*types.Lesson, []uuid.UUID) {
		lessons := make([]*types.Lesson, 0, n)
		ids := make([]uuid.UUID, 0, n)
		for i := 0; i < n; i++ {
			id := uuid.New()
			lessons = append(lessons, &types.Lesson{ID: id, CourseID: courseID, ModuleID: moduleID, Index: i})
			ids = append(ids, id)
		}
		return lessons, ids
	}

	t.Run("three_of_four_completed_is_75", func(t *testing.T) {
		lessons, ids := newLessons(4)
		progress := &fakeProgressRepo{statuses: map[uuid.UUID]types.ProgressStatus{
			ids[0]: types.ProgressCompleted,
			ids[1]: types.ProgressCompleted,
			ids[2]: types.ProgressCompleted,
			ids[3]: types.ProgressInProgress,
		}}
		svc := NewCompletionService(testLogger(), &fakeLessonRepo{lessons: lessons}, progress)

		pct, err := svc.Completion(context.Background(), userID, courseID)
		if err != nil {
			t.Fatalf("Completion returned error: %v", err)
		}
		if pct != 75 {
			t.Fatalf("Completion=%v, want 75", pct)
		}
	})

	t.Run("in_progress_does_not_count", func(t *testing.T) {
		lessons, ids := newLessons(2)
		progress := &fakeProgressRepo{statuses: map[uuid.UUID]types.ProgressStatus{
			ids[0]: types.ProgressInProgress,
			ids[1]: types.ProgressInProgress,
		}}
		svc := NewCompletionService(testLogger(), &fakeLessonRepo{lessons: lessons}, progress)

		pct, err := svc.Completion(context.Background(), userID, courseID)
		if err != nil {
			t.Fatalf("Completion returned error: %v", err)
		}
		if pct != 0 {
			t.Fatalf("Completion=%v, want 0", pct)
		}
	})

	t.Run("course_without_lessons_is_0", func(t *testing.T) {
		svc := NewCompletionService(testLogger(), &fakeLessonRepo{}, &fakeProgressRepo{})

		pct, err := svc.Completion(context.Background(), userID, courseID)
		if err != nil {
			t.Fatalf("Completion returned error: %v", err)
		}
		if pct != 0 {
			t.Fatalf("Completion=%v, want 0", pct)
		}
	})

	t.Run("no_progress_records_is_0", func(t *testing.T) {
		lessons, _ := newLessons(3)
		svc := NewCompletionService(testLogger(), &fakeLessonRepo{lessons: lessons}, &fakeProgressRepo{})

		pct, err := svc.Completion(context.Background(), userID, courseID)
		if err != nil {
			t.Fatalf("Completion returned error: %v", err)
		}
		if pct != 0 {
			t.Fatalf("Completion=%v, want 0", pct)
		}
	})
}
