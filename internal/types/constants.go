package types

const ContextIdentityKey = "identity"

// Role is the capability level bound into a user's credential.
type Role string

const (
	RoleSubmitter Role = "submitter"
	RoleReviewer  Role = "reviewer"
)

func (r Role) Valid() bool {
	return r == RoleSubmitter || r == RoleReviewer
}

// DefaultOrigins are allowed by CORS and the websocket upgrader in
// development.
var DefaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}
