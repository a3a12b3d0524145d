package store

import (
	"encoding/binary"

	"go.etcd.io/bbolt"
)

var schemaVersionKey = []byte("schema_version")

// migrations are applied in order to bring a bolt database up to the
// current schema. Existing entries must never be edited, only appended to.
var migrations = []func(tx *bbolt.Tx) error{
	createBuckets,
}

func createBuckets(tx *bbolt.Tx) error {
	for _, name := range []string{
		usersBucket,
		emailsBucket,
		tasksBucket,
		sessionsBucket,
	} {
		_, err := tx.CreateBucketIfNotExists([]byte(name))
		if err != nil {
			return err
		}
	}

	return nil
}

func schemaVersion(meta *bbolt.Bucket) uint64 {
	v := meta.Get(schemaVersionKey)
	if len(v) != 8 {
		return 0
	}

	return binary.BigEndian.Uint64(v)
}

func migrate(tx *bbolt.Tx) error {
	meta, err := tx.CreateBucketIfNotExists([]byte(metaBucket))
	if err != nil {
		return err
	}

	version := schemaVersion(meta)

	for i := version; i < uint64(len(migrations)); i++ {
		err = migrations[i](tx)
		if err != nil {
			return err
		}
	}

	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(len(migrations)))

	return meta.Put(schemaVersionKey, b)
}
