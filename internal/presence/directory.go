package presence

import (
	"log/slog"
	"sync"
)

// Conn is a live delivery channel for one user. The websocket bridge
// provides the production implementation; tests provide fakes.
type Conn interface {
	// ClientID identifies the underlying connection, not the user.
	ClientID() string
	// Send queues a payload for delivery. It must not block; a full or
	// dead connection drops the payload.
	Send(payload []byte)
}

// Directory maps user ids to their single live connection. It is
// process-scoped state: on restart every user is offline until they
// reconnect. A user has at most one handle at a time; registering again
// replaces the previous one (last registration wins).
type Directory struct {
	mu      sync.RWMutex
	handles map[string]Conn
	log     *slog.Logger
}

// NewDirectory creates an empty presence directory.
func NewDirectory() *Directory {
	return &Directory{
		handles: make(map[string]Conn),
		log:     slog.Default().With("service", "presence"),
	}
}

// Register records conn as the live handle for userID, replacing any
// previous handle.
func (d *Directory) Register(userID string, conn Conn) {
	d.mu.Lock()
	prev, had := d.handles[userID]
	d.handles[userID] = conn
	d.mu.Unlock()

	if had {
		d.log.Debug("Replaced live handle",
			"user_id", userID,
			"old_client", prev.ClientID(),
			"new_client", conn.ClientID())
		return
	}
	d.log.Debug("User came online", "user_id", userID, "client_id", conn.ClientID())
}

// Unregister removes the handle for userID, but only when it still belongs
// to clientID. A stale disconnect arriving after a newer registration must
// not knock the user offline. Unregistering an absent user is a no-op.
func (d *Directory) Unregister(userID, clientID string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	conn, ok := d.handles[userID]
	if !ok || conn.ClientID() != clientID {
		return
	}
	delete(d.handles, userID)
	d.log.Debug("User went offline", "user_id", userID, "client_id", clientID)
}

// Lookup returns the live handle for userID, if any.
func (d *Directory) Lookup(userID string) (Conn, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	conn, ok := d.handles[userID]
	return conn, ok
}

// OnlineUsers returns the ids of every user with a live handle.
func (d *Directory) OnlineUsers() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	users := make([]string, 0, len(d.handles))
	for userID := range d.handles {
		users = append(users, userID)
	}
	return users
}
