package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/coursiva/coursiva-backend/internal/logger"
	"github.com/coursiva/coursiva-backend/internal/types"
)

func testLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

type fakeUserRepo struct {
	users map[uuid.UUID]*types.User
	err   error
}

func (f *fakeUserRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users[id], nil
}

type fakeCourseRepo struct {
	courses        []*types.Course
	publishedCalls int
	err            error
}

func (f *fakeCourseRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Course, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, c := range f.courses {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCourseRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Course, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*types.Course
	for _, id := range ids {
		for _, c := range f.courses {
			if c.ID == id {
				out = append(out, c)
			}
		}
	}
	return out, nil
}

func (f *fakeCourseRepo) GetPublishedByLevel(ctx context.Context, tx *gorm.DB, level types.Level) ([]*types.Course, error) {
	f.publishedCalls++
	if f.err != nil {
		return nil, f.err
	}
	var out []*types.Course
	for _, c := range f.courses {
		if c.Published && c.Level == level {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeModuleRepo struct {
	modules []*types.CourseModule
	err     error
}

func (f *fakeModuleRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.CourseModule, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, m := range f.modules {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeModuleRepo) GetByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]*types.CourseModule, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*types.CourseModule
	for _, m := range f.modules {
		if m.CourseID == courseID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeLessonRepo struct {
	lessons []*types.Lesson
	err     error
}

func (f *fakeLessonRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Lesson, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, l := range f.lessons {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, nil
}

func (f *fakeLessonRepo) GetByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]*types.Lesson, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*types.Lesson
	for _, l := range f.lessons {
		if l.CourseID == courseID {
			out = append(out, l)
		}
	}
	return out, nil
}

// fakeProgressRepo keys every node's status by its id, whatever the
// granularity, mirroring the one-row-per-node store.
type fakeProgressRepo struct {
	statuses    map[uuid.UUID]types.ProgressStatus
	statusCalls int
	lessonCalls int
	err         error
}

func (f *fakeProgressRepo) GetByUserAndLessonIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, lessonIDs []uuid.UUID) ([]*types.ProgressRecord, error) {
	f.lessonCalls++
	if f.err != nil {
		return nil, f.err
	}
	var out []*types.ProgressRecord
	for _, id := range lessonIDs {
		status, ok := f.statuses[id]
		if !ok {
			continue
		}
		lessonID := id
		out = append(out, &types.ProgressRecord{
			UserID:   userID,
			LessonID: &lessonID,
			Status:   status,
		})
	}
	return out, nil
}

func (f *fakeProgressRepo) Status(ctx context.Context, tx *gorm.DB, userID, nodeID uuid.UUID) (types.ProgressStatus, error) {
	f.statusCalls++
	if f.err != nil {
		return "", f.err
	}
	if status, ok := f.statuses[nodeID]; ok {
		return status, nil
	}
	return types.ProgressNotStarted, nil
}

type fakeEnrollmentRepo struct {
	mu        sync.Mutex
	rows      map[string]*types.Enrollment
	getErr    error
	createErr error
}

func enrollKey(userID, courseID uuid.UUID) string {
	return userID.String() + "|" + courseID.String()
}

func (f *fakeEnrollmentRepo) GetByUserAndCourse(ctx context.Context, tx *gorm.DB, userID, courseID uuid.UUID) (*types.Enrollment, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[enrollKey(userID, courseID)], nil
}

func (f *fakeEnrollmentRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Enrollment) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	key := enrollKey(row.UserID, row.CourseID)
	if _, exists := f.rows[key]; exists {
		return gorm.ErrDuplicatedKey
	}
	if f.rows == nil {
		f.rows = map[string]*types.Enrollment{}
	}
	f.rows[key] = row
	return nil
}

type auditEntry struct {
	userID      uuid.UUID
	contentID   uuid.UUID
	contentType types.ContentType
	decision    types.AccessDecision
}

// fakeAudit records synchronously so tests can assert without racing the
// real service's goroutine.
type fakeAudit struct {
	mu      sync.Mutex
	entries []auditEntry
}

func (f *fakeAudit) Record(userID, contentID uuid.UUID, contentType types.ContentType, decision types.AccessDecision) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, auditEntry{userID: userID, contentID: contentID, contentType: contentType, decision: decision})
}

type fakeCache struct {
	mu          sync.Mutex
	decisions   map[string]types.AccessDecision
	lists       map[string][]uuid.UUID
	getErr      error
	setErr      error
	invalidated []uuid.UUID
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		decisions: map[string]types.AccessDecision{},
		lists:     map[string][]uuid.UUID{},
	}
}

func cacheDecisionKey(userID, contentID uuid.UUID, contentType types.ContentType) string {
	return fmt.Sprintf("%s:%s:%s", userID, contentType, contentID)
}

func cacheListKey(userID uuid.UUID, level types.Level) string {
	return fmt.Sprintf("%s:%s", userID, level)
}

func (f *fakeCache) GetDecision(ctx context.Context, userID, contentID uuid.UUID, contentType types.ContentType) (*types.AccessDecision, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if d, ok := f.decisions[cacheDecisionKey(userID, contentID, contentType)]; ok {
		copied := d
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeCache) SetDecision(ctx context.Context, userID, contentID uuid.UUID, contentType types.ContentType, decision *types.AccessDecision) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.decisions[cacheDecisionKey(userID, contentID, contentType)] = *decision
	return nil
}

func (f *fakeCache) GetCourseList(ctx context.Context, userID uuid.UUID, level types.Level) ([]uuid.UUID, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if ids, ok := f.lists[cacheListKey(userID, level)]; ok {
		return append([]uuid.UUID{}, ids...), nil
	}
	return nil, nil
}

func (f *fakeCache) SetCourseList(ctx context.Context, userID uuid.UUID, level types.Level, courseIDs []uuid.UUID) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists[cacheListKey(userID, level)] = append([]uuid.UUID{}, courseIDs...)
	return nil
}

func (f *fakeCache) InvalidateUser(ctx context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated = append(f.invalidated, userID)
	prefix := userID.String()
	for k := range f.decisions {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(f.decisions, k)
		}
	}
	for k := range f.lists {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(f.lists, k)
		}
	}
	return nil
}

func (f *fakeCache) Ping(ctx context.Context) error { return nil }
func (f *fakeCache) Close() error                   { return nil }
