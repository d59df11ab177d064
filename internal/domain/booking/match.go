package booking

// FindActiveBooking scans the full booking collection and returns the
// identifier of the most relevant live booking the user holds for the target
// event, or "" when none exists.
//
// A booking is considered when all of the following hold:
//   - its status is live (not cancelled, not refunded)
//   - its creator either resolves to userID, or does not resolve at all.
//     An unresolvable creator is ambiguous rather than disqualifying, but
//     only when a user id was supplied to attribute it to
//   - its event resolves to eventID
//
// When several live bookings match the same (user, event) pair, the first
// one encountered in the source collection wins.
func FindActiveBooking(bookings []*Booking, userID, eventID string) string {
	if eventID == "" {
		return ""
	}

	for _, b := range bookings {
		if b == nil || !b.IsLive() {
			continue
		}

		creatorID := b.CreatorID()
		if creatorID != "" && creatorID != userID {
			continue
		}
		if creatorID == "" && userID == "" {
			continue
		}

		if b.EventID() != eventID {
			continue
		}

		return b.ID
	}
	return ""
}

// LiveBookings returns the identifiers of every live booking matching the
// (user, event) pair, in source order. More than one entry indicates a
// backend invariant violation worth surfacing in logs; FindActiveBooking
// still resolves it deterministically via the first-wins tie-break.
func LiveBookings(bookings []*Booking, userID, eventID string) []string {
	if eventID == "" {
		return nil
	}

	var ids []string
	for _, b := range bookings {
		if b == nil || !b.IsLive() {
			continue
		}
		creatorID := b.CreatorID()
		if creatorID != "" && creatorID != userID {
			continue
		}
		if creatorID == "" && userID == "" {
			continue
		}
		if b.EventID() != eventID {
			continue
		}
		ids = append(ids, b.ID)
	}
	return ids
}
