package types

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

func TestLevelBelow(t *testing.T) {
	if _, ok := LevelBeginner.Below(); ok {
		t.Fatalf("beginner should have no lower level")
	}
	if lower, ok := LevelIntermediate.Below(); !ok || lower != LevelBeginner {
		t.Fatalf("intermediate lower=%s ok=%v, want beginner", lower, ok)
	}
	if lower, ok := LevelAdvanced.Below(); !ok || lower != LevelIntermediate {
		t.Fatalf("advanced lower=%s ok=%v, want intermediate", lower, ok)
	}
}

func TestPrerequisiteIDs(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	t.Run("ordered_list", func(t *testing.T) {
		course := &Course{Prerequisites: datatypes.JSON([]byte(`["` + a.String() + `","` + b.String() + `"]`))}
		ids, err := course.PrerequisiteIDs()
		if err != nil {
			t.Fatalf("PrerequisiteIDs: %v", err)
		}
		if len(ids) != 2 || ids[0] != a || ids[1] != b {
			t.Fatalf("ids=%v, want [%s %s]", ids, a, b)
		}
	})

	t.Run("empty_column", func(t *testing.T) {
		course := &Course{}
		ids, err := course.PrerequisiteIDs()
		if err != nil || ids != nil {
			t.Fatalf("ids=%v err=%v, want nil nil", ids, err)
		}
	})

	t.Run("malformed_json", func(t *testing.T) {
		lesson := &Lesson{Prerequisites: datatypes.JSON([]byte(`{`))}
		if _, err := lesson.PrerequisiteIDs(); err == nil {
			t.Fatalf("expected decode error")
		}
	})
}
