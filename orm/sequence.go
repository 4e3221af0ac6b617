package orm

import (
	"encoding/binary"

	"github.com/iov-one/billchain"
)

// Sequence maintains a counter, and generates a
// series of keys. Each key is greater than the last,
// both NextInt() as well as bytes.Compare() on NextVal().
type Sequence struct {
	id []byte
}

// NewSequence returns a sequence counter. Sequence is using following pattern
// to construct a key:
//    _s.<bucket>:<name>
func NewSequence(bucket, name string) Sequence {
	id := "_s." + bucket + ":" + name
	return Sequence{
		id: []byte(id),
	}
}

// NextVal increments the sequence and returns its state as 8 bytes.
func (s *Sequence) NextVal(db billchain.KVStore) []byte {
	_, bz := s.increment(db, 1)
	return bz
}

// NextInt increments the sequence and returns its state as int.
func (s *Sequence) NextInt(db billchain.KVStore) int64 {
	val, _ := s.increment(db, 1)
	return val
}

// Latest returns the recently returned value of the sequence. This method does
// not modify the sequence state. Use NextVal or NextInt to acquire a sequence
// value that was not given to anyone else.
func (s *Sequence) Latest(db billchain.ReadOnlyKVStore) int64 {
	return DecodeSequence(db.Get(s.id))
}

func (s *Sequence) increment(db billchain.KVStore, inc int64) (int64, []byte) {
	val := DecodeSequence(db.Get(s.id)) + inc
	raw := EncodeSequence(val)
	db.Set(s.id, raw)
	return val, raw
}

// DecodeSequence returns the numeric value of an encoded sequence key.
func DecodeSequence(bz []byte) int64 {
	if len(bz) != 8 {
		return 0
	}
	val := binary.BigEndian.Uint64(bz)
	return int64(val)
}

// EncodeSequence returns the 8 byte big endian representation of val.
func EncodeSequence(val int64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, uint64(val))
	return bz
}
