package sim

// Resolver turns collisions into classification outcomes. It is the only
// producer of score deltas.
type Resolver struct {
	CorrectPoints int
}

// Resolve evaluates one pair, updates the item and returns the resulting
// event. ok is false when the item ignored the outcome.
func (r Resolver) Resolve(c Collision) (Event, bool) {
	it, cl := c.Item, c.Classifier
	if it.State() != ItemTraveling {
		return Event{}, false
	}

	ev := Event{
		Item:       it.ID(),
		Classifier: cl.ID(),
		Category:   it.Category(),
		LaneID:     it.LaneID(),
		Position:   it.Position(),
	}

	eval := cl.Evaluate(it.Category())
	switch it.ReceiveOutcome(eval.Accepted) {
	case OutcomeCorrect:
		ev.Kind = EventCorrectCollection
		ev.Points = r.CorrectPoints
	case OutcomeRetry:
		ev.Kind = EventMisclassifiedRetry
		ev.RetriesLeft = it.Retry().RetriesLeft()
	case OutcomeForced:
		ev.Kind = EventIncorrectCollectionForced
	default:
		return Event{}, false
	}
	return ev, true
}
