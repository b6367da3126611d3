package matching

import "errors"

var (
	// ErrNoOverlappingProposal means a contractor-selected interval touches
	// none of the tenant's proposed slots. The caller should re-select.
	ErrNoOverlappingProposal = errors.New("selected interval does not overlap any proposed slot")

	// ErrNoFullyFreeSlot means no proposed slot is entirely free of
	// contractor jobs; the caller falls back to manual selection.
	ErrNoFullyFreeSlot = errors.New("no proposed slot is fully free")

	ErrNoProposals = errors.New("tenant has not proposed any availability")
)
