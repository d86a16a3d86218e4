package firebase

// State is the lifecycle position of one handle.
type State int

const (
	StateUninitialized State = iota
	StateInitializing
	StateReady
	StateAbsent
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateAbsent:
		return "absent"
	case StateFailed:
		return "failed"
	default:
		return "uninitialized"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Handle names as reported by Bootstrapper.Status.
const (
	HandleApp       = "app"
	HandleAnalytics = "analytics"
	HandleFirestore = "firestore"
	HandleAuth      = "auth"
	HandleStorage   = "storage"
	HandleMessaging = "messaging"

	HandleAdminApp       = "admin.app"
	HandleAdminFirestore = "admin.firestore"
	HandleAdminAuth      = "admin.auth"
)

var (
	clientHandleNames = []string{HandleApp, HandleAnalytics, HandleFirestore, HandleAuth, HandleStorage, HandleMessaging}
	adminHandleNames  = []string{HandleAdminApp, HandleAdminFirestore, HandleAdminAuth}
)
