// Package session provides generic, store-backed session management.
//
// Sessions are identified by a stable UUID and carried by the client as an
// opaque token. Anonymous sessions are created on first contact and can later
// be bound to a user with Authenticate, which rotates the token while keeping
// the ID.
//
// # Core Components
//
//   - Session[Data]: session container with application-defined data
//   - Manager[Data]: lifecycle coordination (create, load, touch, persist)
//   - Store[Data]: persistence interface; MemoryStore is the in-process implementation
//   - ContextValues: key/value access to a Session[Values] stored in the request context
//
// # Basic Usage
//
//	store := session.NewMemoryStore[session.Values]()
//	manager := session.NewManager(store, 24*time.Hour, 5*time.Minute)
//
//	sess, err := manager.New()
//	if err != nil {
//		return err
//	}
//	ctx = session.WithSession(ctx, &sess)
//
//	var kv session.ContextValues
//	_ = kv.Set(ctx, "theme", []byte("dark"))
//
//	// after the request
//	err = manager.Store(ctx, sess)
//
// Manager.Store saves only modified sessions. Sessions marked with Logout are
// removed from the store and ErrNotAuthenticated is returned so the transport
// can drop the client token.
package session
