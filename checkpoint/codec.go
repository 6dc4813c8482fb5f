package checkpoint

import (
	"reflect"

	"github.com/hashicorp/go-msgpack/codec"

	"streamagg/agg"
)

// msgpack handle shared by encode and decode. RawToString and the map
// type keep decoded snapshot values in the generic forms the snapshot
// getters accept.
func newHandle() *codec.MsgpackHandle {
	h := &codec.MsgpackHandle{}
	h.RawToString = true
	h.MapType = reflect.TypeOf(map[string]interface{}(nil))
	return h
}

// SnapshotToBytes serializes an ordered snapshot. The field order is
// preserved, so equal states produce equal bytes.
func SnapshotToBytes(snap *agg.Snapshot) ([]byte, error) {
	var buf []byte
	enc := codec.NewEncoderBytes(&buf, newHandle())
	if err := enc.Encode(snap); err != nil {
		return nil, err
	}
	return buf, nil
}

func BytesToSnapshot(buf []byte) (*agg.Snapshot, error) {
	snap := agg.NewSnapshot()
	dec := codec.NewDecoderBytes(buf, newHandle())
	if err := dec.Decode(snap); err != nil {
		return nil, err
	}
	return snap, nil
}
