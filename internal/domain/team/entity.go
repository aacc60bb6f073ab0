package team

import "time"

// Team groups employees under one team lead. Membership drives worksheet
// verification queues and per-team break policy.
type Team struct {
	ID         string
	Name       string
	TeamLeadID *string // employee id of the lead, nil while unassigned
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
