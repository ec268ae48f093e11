package model

// StudySession is one logged block of study owned by a single user.  Hours
// and Dates hold the raw text submitted by the form; neither is parsed or
// range checked.  Notes is the only column declared NOT NULL besides Subject.
type StudySession struct {
	ID      uint64 // study_session.id
	UserID  uint64 // study_session.user_id (references user.id)
	Subject string // study_session.subject
	Hours   string // study_session.hours
	Dates   string // study_session.dates
	Notes   string // study_session.notes
}

// OwnerID implements Owned.
func (s *StudySession) OwnerID() uint64 { return s.UserID }
