package domain

import "time"

// Patch is a partial update merged over an existing record.
type Patch[T any] interface {
	Apply(T) T
}

// PatchFunc adapts a plain function to the Patch interface.
type PatchFunc[T any] func(T) T

// Apply calls f.
func (f PatchFunc[T]) Apply(v T) T { return f(v) }

func set[V any](dst *V, src *V) {
	if src != nil {
		*dst = *src
	}
}

// ProjectPatch carries the project fields to overwrite; nil fields are left unchanged.
type ProjectPatch struct {
	Name           *string
	Concept        *string
	Setting        *string
	Theme          *string
	Perspective    *string
	GameplayFocus  *string
	UniqueHook     *string
	Engine         *string
	TargetPlatform *string
	Status         *ProjectStatus
}

func (p ProjectPatch) Apply(v Project) Project {
	set(&v.Name, p.Name)
	set(&v.Concept, p.Concept)
	set(&v.Setting, p.Setting)
	set(&v.Theme, p.Theme)
	set(&v.Perspective, p.Perspective)
	set(&v.GameplayFocus, p.GameplayFocus)
	set(&v.UniqueHook, p.UniqueHook)
	set(&v.Engine, p.Engine)
	set(&v.TargetPlatform, p.TargetPlatform)
	set(&v.Status, p.Status)
	return v
}

type StoryElementPatch struct {
	Type       *StoryType
	Title      *string
	Content    *string
	OrderIndex *int
}

func (p StoryElementPatch) Apply(v StoryElement) StoryElement {
	set(&v.Type, p.Type)
	set(&v.Title, p.Title)
	set(&v.Content, p.Content)
	set(&v.OrderIndex, p.OrderIndex)
	return v
}

type GameSystemPatch struct {
	Category    *SystemCategory
	Name        *string
	Description *string
	Status      *WorkStatus
	Priority    *Priority
}

func (p GameSystemPatch) Apply(v GameSystem) GameSystem {
	set(&v.Category, p.Category)
	set(&v.Name, p.Name)
	set(&v.Description, p.Description)
	set(&v.Status, p.Status)
	set(&v.Priority, p.Priority)
	return v
}

// TaskPatch updates task fields. Status changes that must also stamp or clear
// CompletedAt go through TaskStatusPatch instead.
type TaskPatch struct {
	Title       *string
	Description *string
	Category    *TaskCategory
	Status      *TaskStatus
	Priority    *Priority
	DueDate     *string // "" clears the due date
	CompletedAt *time.Time
}

func (p TaskPatch) Apply(v Task) Task {
	set(&v.Title, p.Title)
	set(&v.Description, p.Description)
	set(&v.Category, p.Category)
	set(&v.Status, p.Status)
	set(&v.Priority, p.Priority)
	set(&v.DueDate, p.DueDate)
	if p.CompletedAt != nil {
		at := *p.CompletedAt
		v.CompletedAt = &at
	}
	return v
}

type AssetPatch struct {
	Name     *string
	Type     *AssetType
	Status   *AssetStatus
	FilePath *string
	Notes    *string
}

func (p AssetPatch) Apply(v Asset) Asset {
	set(&v.Name, p.Name)
	set(&v.Type, p.Type)
	set(&v.Status, p.Status)
	set(&v.FilePath, p.FilePath)
	set(&v.Notes, p.Notes)
	return v
}

type HorrorElementPatch struct {
	Type        *HorrorType
	Name        *string
	Description *string
	Trigger     *string
	Implemented *bool
}

func (p HorrorElementPatch) Apply(v HorrorElement) HorrorElement {
	set(&v.Type, p.Type)
	set(&v.Name, p.Name)
	set(&v.Description, p.Description)
	set(&v.Trigger, p.Trigger)
	set(&v.Implemented, p.Implemented)
	return v
}

type LevelPatch struct {
	Name        *string
	Description *string
	OrderIndex  *int
	Status      *LevelStatus
	Notes       *string
}

func (p LevelPatch) Apply(v Level) Level {
	set(&v.Name, p.Name)
	set(&v.Description, p.Description)
	set(&v.OrderIndex, p.OrderIndex)
	set(&v.Status, p.Status)
	set(&v.Notes, p.Notes)
	return v
}

type MarketingActivityPatch struct {
	ActivityType  *ActivityType
	Title         *string
	Description   *string
	ScheduledDate *string // "" clears the scheduled date
	Completed     *bool
}

func (p MarketingActivityPatch) Apply(v MarketingActivity) MarketingActivity {
	set(&v.ActivityType, p.ActivityType)
	set(&v.Title, p.Title)
	set(&v.Description, p.Description)
	set(&v.ScheduledDate, p.ScheduledDate)
	set(&v.Completed, p.Completed)
	return v
}

// TaskStatusPatch moves a task to status. CompletedAt is stamped with now when
// the task becomes completed and cleared for any other status.
func TaskStatusPatch(status TaskStatus, now time.Time) Patch[Task] {
	return PatchFunc[Task](func(t Task) Task {
		t.Status = status
		if status == TaskCompleted {
			at := now
			t.CompletedAt = &at
		} else {
			t.CompletedAt = nil
		}
		return t
	})
}

// ToggleTask flips a task between todo and completed.
func ToggleTask(t Task, now time.Time) Patch[Task] {
	if t.Status == TaskCompleted {
		return TaskStatusPatch(TaskTodo, now)
	}
	return TaskStatusPatch(TaskCompleted, now)
}

// ToggleHorrorImplemented flips the implemented checkbox of a horror element.
func ToggleHorrorImplemented(h HorrorElement) Patch[HorrorElement] {
	implemented := !h.Implemented
	return HorrorElementPatch{Implemented: &implemented}
}

// ToggleMarketingCompleted flips the completed checkbox of a marketing activity.
func ToggleMarketingCompleted(m MarketingActivity) Patch[MarketingActivity] {
	completed := !m.Completed
	return MarketingActivityPatch{Completed: &completed}
}
