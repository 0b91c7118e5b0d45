package department

import "time"

type Department struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`

	// ManagerID points back at the user heading this department. It is
	// nullable because the manager row must exist before the link can be
	// written (see the manager provisioning protocol).
	ManagerID *string `json:"manager_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
