package core

// IsRelevant reports whether the dominant triple of c carries the time datatype.
func IsRelevant(c Context) bool {
	last, ok := c.Last()
	return ok && last.Datatype == TimeDatatype
}

// HintFor builds the hint of a relevant context.
func HintFor(c Context) Hint {
	last, _ := c.Last()
	return Hint{
		Text:      c.Text,
		Location:  c.Region, // arrays copy, so the hint never aliases the context
		Value:     last.Object,
		Content:   last.Content,
		Datatype:  last.Datatype,
		Predicate: last.Predicate,
	}
}

// Scan returns one hint per relevant context, in input order.
func Scan(contexts []Context) []Hint {
	hints := make([]Hint, 0, len(contexts))
	for _, c := range contexts {
		if IsRelevant(c) {
			hints = append(hints, HintFor(c))
		}
	}
	return hints
}
