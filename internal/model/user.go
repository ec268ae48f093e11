package model

// User represents an account record as stored in the `user` table.  Each
// field corresponds to a column.  Username is unique in practice only: the
// table carries no unique constraint and registration performs an existence
// check before inserting.
//
// Fields:
//  ID       – auto-assigned primary key.
//  Username – login name; also the value stored in the session.
//  Email    – free-text contact address, never validated.
//  Password – bcrypt hash of the password; the plain text is never stored.
type User struct {
	ID       uint64 // user.id
	Username string // user.username
	Email    string // user.email
	Password string // user.password (bcrypt hash)
}
