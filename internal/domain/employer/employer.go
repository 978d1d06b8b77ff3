package employer

import (
	"time"

	"github.com/klimenko666/dptmptch/internal/common"
)

type Employer struct {
	ID               common.UUID `json:"id"`
	OrganizationName string      `json:"organization_name"`
	ContactName      string      `json:"contact_name"`
	Phone            string      `json:"phone"`
	Email            string      `json:"email"`
	PasswordHash     string      `json:"-"`
	City             string      `json:"city,omitempty"`
	Address          string      `json:"address,omitempty"`
	Description      string      `json:"description,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
}
