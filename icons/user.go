package icons

// UserHandle identifies the user profile an app belongs to.
type UserHandle int

const (
	// UserNull is the absent user.
	UserNull UserHandle = -10000
	// UserSystem is the primary user.
	UserSystem UserHandle = 0
)

// processUser is the user the current process runs as.
var processUser = UserSystem

// MyUserHandle returns the user of the current process.
func MyUserHandle() UserHandle { return processUser }
