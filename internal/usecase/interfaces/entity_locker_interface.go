package interfaces

import "context"

// IEntityLocker serializes read-modify-write cycles on one entity across processes.
// Lock fails with entities.ErrConflict when the key is held elsewhere.
type IEntityLocker interface {
	Lock(ctx context.Context, key string) (release func(), err error)
}
