// Package site is the request-facing helper service of the web application.
//
// Service bundles secret hashing, the session-held user profile, the display
// culture and the localized navigation menu behind one type that handlers
// receive from the composition root.
//
//	svc := site.New(h, repo, resolver, assembler, site.WithLogger(log))
//
//	id, err := svc.Authenticate(ctx, account, password)
//	if err != nil {
//		return err
//	}
//	if err := svc.SetUserProfile(ctx, id); err != nil {
//		return err
//	}
//
//	forest, err := svc.Menu(r)
//
// Profile operations need the session middleware in front of the handler.
package site
