package models

import "time"

// InitialActivity marks the activity row that stands for the project itself.
const InitialActivity = "initial_activity"

type ProjectStatus string

const (
	StatusCreated  ProjectStatus = "created"
	StatusInWork   ProjectStatus = "in work"
	StatusFinished ProjectStatus = "finished"
)

// RowStatus is the secondary status flag kept next to ProjectStatus.
type RowStatus string

const (
	RowCreated  RowStatus = "created"
	RowFinished RowStatus = "finished"
)

// Activity is either a project (ActivityName == InitialActivity) or a task of
// the project named ProjectName.
type Activity struct {
	ID           string `gorm:"primaryKey;size:36" json:"id"`
	ActivityName string `gorm:"size:255;index;not null" json:"activity_name"`
	ProjectName  string `gorm:"size:255;index;not null" json:"project_name"`
	// ProjectKey mirrors ProjectName on project rows and is NULL on tasks, so
	// the unique index only constrains project names.
	ProjectKey    *string       `gorm:"size:255;uniqueIndex" json:"-"`
	Translator    *string       `gorm:"column:translators;size:36;index" json:"translator"`
	Editor        string        `gorm:"size:36;index" json:"editor"`
	Deadline      time.Time     `gorm:"not null" json:"deadline"`
	ProjectStatus ProjectStatus `gorm:"type:varchar(32);index;not null" json:"project_status"`
	Completeness  float64       `gorm:"not null;default:0" json:"completeness"`
	Status        RowStatus     `gorm:"type:varchar(32)" json:"status"`
	EstimatedTime *int          `json:"estimated_time,omitempty"` // minutes
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func (a Activity) IsProject() bool {
	return a.ActivityName == InitialActivity
}

// TranslatorID returns the assigned translator or "".
func (a Activity) TranslatorID() string {
	if a.Translator == nil {
		return ""
	}
	return *a.Translator
}
