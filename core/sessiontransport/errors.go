package sessiontransport

import "errors"

// ErrExpiredSession is returned when saving a session whose expiration has passed.
var ErrExpiredSession = errors.New("sessiontransport: session expired")
