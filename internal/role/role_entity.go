package role

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	Admin          = "ADMIN"
	HR             = "HR"
	ProjectManager = "PROJECT_MANAGER"
	Employee       = "EMPLOYEE"
)

// Names lists every role the system knows, in seeding order.
var Names = []string{Admin, HR, ProjectManager, Employee}

type Role struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role      string    `gorm:"type:varchar(40);not null;uniqueIndex:uq_role_name"`
	CreatedAt time.Time
}

func (r *Role) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// SeesOnlyOwnRecords reports roles that may only read their own employee data.
func SeesOnlyOwnRecords(name string) bool {
	return name == Employee || name == ProjectManager
}
