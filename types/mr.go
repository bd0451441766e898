package types

// KeyValue is one intermediate record flowing from a map stage to a reduce
// stage. On the wire it is a single "key\tvalue" line.
type KeyValue struct {
	Key   string
	Value string
}

func (kv KeyValue) String() string {
	return kv.Key + "\t" + kv.Value
}

// ByKey orders pairs by key, then by value.
type ByKey []KeyValue

func (b ByKey) Len() int { return len(b) }
func (b ByKey) Less(i, j int) bool {
	if b[i].Key != b[j].Key {
		return b[i].Key < b[j].Key
	}
	return b[i].Value < b[j].Value
}
func (b ByKey) Swap(i, j int) { b[i], b[j] = b[j], b[i] }
