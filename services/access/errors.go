package access

import "errors"

var (
	// ErrAccessDenied is the clean denial returned for every negative decision.
	ErrAccessDenied = errors.New("access denied")

	// ErrImpersonationStateInconsistent means the impersonation target no
	// longer exists. The admin must pick a new target; the request is denied.
	ErrImpersonationStateInconsistent = errors.New("impersonation target organization no longer exists")
)
