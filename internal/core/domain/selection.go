package domain

// Selection is an ordered set of option IDs.
type Selection []string

func (s Selection) Contains(optionID string) bool {
	for _, id := range s {
		if id == optionID {
			return true
		}
	}
	return false
}

func (s Selection) Clone() Selection {
	if s == nil {
		return Selection{}
	}
	out := make(Selection, len(s))
	copy(out, s)
	return out
}

// ToggleOption returns current with optionID flipped. A selected option is
// removed. An unselected one replaces the whole selection on single-choice
// polls and is appended on multiple-choice polls while the limit allows;
// past the limit current is returned unchanged with
// ErrSelectionLimitReached. current is never modified.
func ToggleOption(current Selection, optionID string, poll *Poll) (Selection, error) {
	if current.Contains(optionID) {
		out := make(Selection, 0, len(current))
		for _, id := range current {
			if id != optionID {
				out = append(out, id)
			}
		}
		return out, nil
	}

	if !poll.HasOption(optionID) {
		return current.Clone(), ErrInvalidOption
	}

	if !poll.AllowMultiple {
		return Selection{optionID}, nil
	}

	if len(current) >= poll.SelectionLimit() {
		return current.Clone(), ErrSelectionLimitReached
	}

	out := current.Clone()
	return append(out, optionID), nil
}

// ValidateSelection checks selection against poll's cardinality rule and
// option set.
func ValidateSelection(poll *Poll, selection Selection) error {
	if len(selection) == 0 {
		return ErrEmptySelection
	}
	if len(selection) > poll.SelectionLimit() {
		return ErrTooManySelections
	}

	seen := make(map[string]struct{}, len(selection))
	for _, id := range selection {
		if !poll.HasOption(id) {
			return ErrInvalidOption
		}
		if _, dup := seen[id]; dup {
			return ErrDuplicateOption
		}
		seen[id] = struct{}{}
	}
	return nil
}
