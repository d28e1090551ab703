package mapping

// index is a lookup from a device trigger_key to the ordered list of
// candidate entry handles whose trigger_key matches. Handles are stable
// for the life of the processor; the index points at entries, entries
// never point back.
type index map[string][]Handle

func (ix index) candidates(triggerKey string) []Handle {
	return ix[triggerKey]
}
