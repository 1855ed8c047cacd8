// Package correlate groups the expressions of one trace by channel lifetime.
package correlate

import (
	"github.com/ptlab/ptsim/internal/domain"
)

type tracker struct {
	lifetimes []domain.ChannelLifetime
	open      map[int]int
	// active holds open lifetime positions, most recently opened last.
	active []int
	orphan int
	last   int
}

// Lifetimes walks set once in log order and returns every channel lifetime in
// the order they were opened. Message expressions that reference no open
// channel land in a single synthetic orphan lifetime. Lifetimes still open at
// end of input are closed at the final index.
func Lifetimes(set domain.ExpressionSet) []domain.ChannelLifetime {
	t := &tracker{
		open:   make(map[int]int),
		orphan: -1,
		last:   set.LastIndex(),
	}

	for _, expr := range set.All() {
		switch expr.Command {
		case domain.CommandConnect:
			t.connect(expr)
		case domain.CommandDisconnect:
			t.disconnect(expr)
		case domain.CommandStartMessageFilter:
			t.filter(expr)
		case domain.CommandReadMessages, domain.CommandWriteMessages:
			t.member(expr)
		}
	}

	for pos := range t.lifetimes {
		if !t.lifetimes[pos].Closed {
			t.close(pos, t.last)
		}
	}

	return t.lifetimes
}

// Orphans returns the member indices of the synthetic orphan lifetime, if any.
func Orphans(lifetimes []domain.ChannelLifetime) []int {
	for _, lifetime := range lifetimes {
		if lifetime.Orphan {
			return lifetime.MemberIndices
		}
	}
	return nil
}

func (t *tracker) connect(expr domain.Expression) {
	id, ok := expr.Int(domain.FieldChannelID)
	if !ok {
		// A connect whose channel id was not logged cannot be matched by later
		// calls that name a channel, but it still opens the active channel.
		id = int64(domain.OrphanChannelID - 1 - expr.Index)
	}
	channelID := int(id)

	if pos, exists := t.open[channelID]; exists {
		t.close(pos, expr.Index-1)
	}

	t.lifetimes = append(t.lifetimes, domain.ChannelLifetime{
		ChannelID: channelID,
		OpenedAt:  expr.Index,
	})
	pos := len(t.lifetimes) - 1
	t.open[channelID] = pos
	t.active = append(t.active, pos)
}

func (t *tracker) disconnect(expr domain.Expression) {
	pos, ok := t.resolve(expr)
	if !ok {
		return
	}
	t.close(pos, expr.Index)
}

func (t *tracker) filter(expr domain.Expression) {
	pos, ok := t.resolve(expr)
	if !ok {
		pos = t.orphanLifetime(expr.Index)
	}

	lifetime := &t.lifetimes[pos]
	lifetime.FilterIndices = append(lifetime.FilterIndices, expr.Index)
	if id, ok := expr.Int(domain.FieldFilterID); ok && !lifetime.HasFilter(int(id)) {
		lifetime.FilterIDs = append(lifetime.FilterIDs, int(id))
	}
}

func (t *tracker) member(expr domain.Expression) {
	pos, ok := t.resolve(expr)
	if !ok {
		pos = t.orphanLifetime(expr.Index)
	}
	t.lifetimes[pos].MemberIndices = append(t.lifetimes[pos].MemberIndices, expr.Index)
}

// resolve finds the open lifetime an expression refers to: the one for its
// channel id, or the most recently opened one when no id was logged.
func (t *tracker) resolve(expr domain.Expression) (int, bool) {
	if id, ok := expr.Int(domain.FieldChannelID); ok {
		pos, open := t.open[int(id)]
		return pos, open
	}
	if len(t.active) == 0 {
		return 0, false
	}
	return t.active[len(t.active)-1], true
}

func (t *tracker) close(pos, at int) {
	lifetime := &t.lifetimes[pos]
	if lifetime.Closed {
		return
	}
	if at < lifetime.OpenedAt {
		at = lifetime.OpenedAt
	}
	lifetime.ClosedAt = at
	lifetime.Closed = true

	if current, ok := t.open[lifetime.ChannelID]; ok && current == pos {
		delete(t.open, lifetime.ChannelID)
	}
	for i, candidate := range t.active {
		if candidate == pos {
			t.active = append(t.active[:i], t.active[i+1:]...)
			break
		}
	}
}

func (t *tracker) orphanLifetime(index int) int {
	if t.orphan >= 0 {
		return t.orphan
	}
	t.lifetimes = append(t.lifetimes, domain.ChannelLifetime{
		ChannelID: domain.OrphanChannelID,
		OpenedAt:  index,
		Orphan:    true,
	})
	t.orphan = len(t.lifetimes) - 1
	return t.orphan
}
