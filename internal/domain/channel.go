package domain

// OrphanChannelID is the channel id of the synthetic lifetime that collects
// message expressions seen while no matching channel was open. Logged channel
// ids are never negative, so synthetic ids stay apart from real ones.
const OrphanChannelID = -1

// ChannelLifetime is one open..close span of a channel id. A channel id may be
// reused after a close, so a lifetime is keyed by (ChannelID, OpenedAt).
type ChannelLifetime struct {
	ChannelID     int
	OpenedAt      int
	ClosedAt      int
	Closed        bool
	Orphan        bool
	FilterIDs     []int
	FilterIndices []int
	MemberIndices []int
}

type LifetimeKey struct {
	ChannelID int
	OpenedAt  int
}

func (l ChannelLifetime) Key() LifetimeKey {
	return LifetimeKey{ChannelID: l.ChannelID, OpenedAt: l.OpenedAt}
}

// Overlaps reports whether both lifetimes cover a common sequence index.
// Lifetimes that are still open are treated as extending to the end of input.
func (l ChannelLifetime) Overlaps(other ChannelLifetime) bool {
	end, otherEnd := l.end(), other.end()
	return l.OpenedAt <= otherEnd && other.OpenedAt <= end
}

func (l ChannelLifetime) Contains(index int) bool {
	return index >= l.OpenedAt && index <= l.end()
}

func (l ChannelLifetime) end() int {
	if !l.Closed {
		return int(^uint(0) >> 1)
	}
	return l.ClosedAt
}

func (l ChannelLifetime) HasFilter(id int) bool {
	for _, existing := range l.FilterIDs {
		if existing == id {
			return true
		}
	}
	return false
}
