// Package profile keeps a lightweight snapshot of the signed-in user in session storage.
//
// The snapshot is JSON written under SessionKey. It is a copy taken at Set time
// and is not refreshed when the underlying user record changes.
//
//	acc := profile.NewAccessor(session.ContextValues{}, finder, profile.WithLogger(log))
//	if err := acc.Set(ctx, userID); err != nil {
//		return err
//	}
//	p, ok, err := acc.Get(ctx)
package profile
