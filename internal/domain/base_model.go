package domain

import "time"

// Table names the collection a record is kept in, for both store drivers.
type Table interface {
	TableName() string
}

// Entity is implemented by pointers to every record kept in the catalog store.
type Entity interface {
	Table
	GetID() int64
	SetID(id int64)
}

// TimestampedEntity interface for entities with timestamps
type TimestampedEntity interface {
	SetCreatedAt(t time.Time)
	SetUpdatedAt(t time.Time)
	GetCreatedAt() time.Time
}
