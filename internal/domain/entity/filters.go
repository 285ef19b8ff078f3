package entity

import "github.com/google/uuid"

// SlotFilter is a domain-level filter for querying available time slots.
// Used by repository layer to avoid coupling with delivery DTOs.
type SlotFilter struct {
	ProviderID *uuid.UUID
	Date       string // Format: YYYY-MM-DD, matched against the slot's start-of-day window
}

// ProviderFilter narrows the provider directory listing.
type ProviderFilter struct {
	Specialization string // Exact specialization match
	Address        string // Free text matched against every address column (ILIKE)
}
