package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/coursiva/coursiva-backend/internal/types"
)

func newEnrollmentFixture() (*accessFixture, EnrollmentService) {
	f := newAccessFixture()
	svc := NewEnrollmentService(testLogger(), f.enrollments, f.access, f.cache)
	return f, svc
}

func TestEnroll(t *testing.T) {
	t.Run("eligible_user_enrolls_and_cache_is_invalidated", func(t *testing.T) {
		f, svc := newEnrollmentFixture()
		user := f.addUser(verifiedSubscriber())
		course := f.addCourse(&types.Course{Level: types.LevelBeginner, Published: true, IsFree: true})

		res := svc.Enroll(context.Background(), user.ID, course.ID)
		if !res.Success {
			t.Fatalf("result=%+v, want success", res)
		}
		if res.EnrollmentID == nil {
			t.Fatalf("missing enrollment id")
		}
		if len(f.cache.invalidated) != 1 || f.cache.invalidated[0] != user.ID {
			t.Fatalf("invalidated=%v, want [%s]", f.cache.invalidated, user.ID)
		}
	})

	t.Run("denial_is_propagated", func(t *testing.T) {
		f, svc := newEnrollmentFixture()
		user := f.addUser(&types.User{Active: true, Verified: false})
		course := f.addCourse(&types.Course{Level: types.LevelBeginner, Published: true, IsFree: true})

		res := svc.Enroll(context.Background(), user.ID, course.ID)
		if res.Success || res.Code != types.CodeUserNotVerified {
			t.Fatalf("result=%+v, want USER_NOT_VERIFIED denial", res)
		}
		if len(f.cache.invalidated) != 0 {
			t.Fatalf("cache invalidated on denial")
		}
	})

	t.Run("second_enroll_is_already_enrolled", func(t *testing.T) {
		f, svc := newEnrollmentFixture()
		user := f.addUser(verifiedSubscriber())
		course := f.addCourse(&types.Course{Level: types.LevelBeginner, Published: true, IsFree: true})

		first := svc.Enroll(context.Background(), user.ID, course.ID)
		if !first.Success {
			t.Fatalf("first=%+v, want success", first)
		}
		second := svc.Enroll(context.Background(), user.ID, course.ID)
		if second.Success || second.Code != types.CodeAlreadyEnrolled {
			t.Fatalf("second=%+v, want ALREADY_ENROLLED", second)
		}
	})

	t.Run("concurrent_enrolls_yield_exactly_one_success", func(t *testing.T) {
		f, svc := newEnrollmentFixture()
		user := f.addUser(verifiedSubscriber())
		course := f.addCourse(&types.Course{Level: types.LevelBeginner, Published: true, IsFree: true})

		const racers = 2
		results := make([]EnrollmentResult, racers)
		var wg sync.WaitGroup
		for i := 0; i < racers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = svc.Enroll(context.Background(), user.ID, course.ID)
			}(i)
		}
		wg.Wait()

		successes, duplicates := 0, 0
		for _, res := range results {
			switch {
			case res.Success:
				successes++
			case res.Code == types.CodeAlreadyEnrolled:
				duplicates++
			default:
				t.Fatalf("unexpected result %+v", res)
			}
		}
		if successes != 1 || duplicates != 1 {
			t.Fatalf("successes=%d duplicates=%d, want exactly one of each", successes, duplicates)
		}
	})

	t.Run("persistence_failure_is_system_error", func(t *testing.T) {
		f, svc := newEnrollmentFixture()
		user := f.addUser(verifiedSubscriber())
		course := f.addCourse(&types.Course{Level: types.LevelBeginner, Published: true, IsFree: true})
		f.enrollments.createErr = errors.New("connection refused")

		res := svc.Enroll(context.Background(), user.ID, course.ID)
		if res.Success || res.Code != types.CodeSystemError {
			t.Fatalf("result=%+v, want SYSTEM_ERROR", res)
		}
	})
}
