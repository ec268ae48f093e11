package model

// Application is one tracked job application owned by a single user.  Status
// is free text ("applied", "interview", "rejected", ...); no transitions are
// enforced.
type Application struct {
	ID          uint64 // application.id
	UserID      uint64 // application.user_id (references user.id)
	CompanyName string // application.company_name
	Role        string // application.role
	Status      string // application.status
}

// OwnerID implements Owned.
func (a *Application) OwnerID() uint64 { return a.UserID }
